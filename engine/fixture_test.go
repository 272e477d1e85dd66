package engine

// Hand-assembled WebAssembly fixtures for driving the engine without a
// toolchain. Only the handful of encoding primitives the fixtures need are
// implemented here.

// uleb encodes an unsigned LEB128 value.
func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}

// sleb encodes a signed LEB128 value.
func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0)
		if !done {
			b |= 0x80
		}
		out = append(out, b)
		if done {
			return out
		}
	}
}

func wasmSection(id byte, payload []byte) []byte {
	out := []byte{id}
	out = append(out, uleb(uint32(len(payload)))...)
	return append(out, payload...)
}

func wasmName(s string) []byte {
	out := uleb(uint32(len(s)))
	return append(out, s...)
}

// functype encodings used by the fixtures.
var (
	typeVoid   = []byte{0x60, 0x00, 0x00}             // () -> ()
	typeI32    = []byte{0x60, 0x01, 0x7f, 0x00}       // (i32) -> ()
	typeI32I32 = []byte{0x60, 0x02, 0x7f, 0x7f, 0x00} // (i32, i32) -> ()
)

type fixtureImport struct {
	module, field string
	typeIdx       byte
}

// buildBootModule assembles a module that imports the given host functions
// and exports a nullary boot function with the given body (locals and end
// opcode are appended here). When data is non-nil, one page of memory is
// declared, exported as "memory", and initialized with data at offset 0.
func buildBootModule(types [][]byte, imports []fixtureImport, body []byte, data []byte) []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	// Type section: fixture types plus the boot signature () -> ().
	tsec := uleb(uint32(len(types) + 1))
	for _, t := range types {
		tsec = append(tsec, t...)
	}
	tsec = append(tsec, typeVoid...)
	bootType := byte(len(types))
	out = append(out, wasmSection(1, tsec)...)

	if len(imports) > 0 {
		isec := uleb(uint32(len(imports)))
		for _, imp := range imports {
			isec = append(isec, wasmName(imp.module)...)
			isec = append(isec, wasmName(imp.field)...)
			isec = append(isec, 0x00, imp.typeIdx)
		}
		out = append(out, wasmSection(2, isec)...)
	}

	out = append(out, wasmSection(3, []byte{0x01, bootType})...)

	if data != nil {
		out = append(out, wasmSection(5, []byte{0x01, 0x00, 0x01})...)
	}

	bootIdx := byte(len(imports))
	esec := []byte{0x01}
	if data != nil {
		esec = []byte{0x02}
	}
	esec = append(esec, wasmName("boot")...)
	esec = append(esec, 0x00, bootIdx)
	if data != nil {
		esec = append(esec, wasmName("memory")...)
		esec = append(esec, 0x02, 0x00)
	}
	out = append(out, wasmSection(7, esec)...)

	code := append([]byte{0x00}, body...) // no locals
	code = append(code, 0x0b)
	csec := []byte{0x01}
	csec = append(csec, uleb(uint32(len(code)))...)
	csec = append(csec, code...)
	out = append(out, wasmSection(10, csec)...)

	if data != nil {
		dsec := []byte{0x01, 0x00, 0x41, 0x00, 0x0b}
		dsec = append(dsec, uleb(uint32(len(data)))...)
		dsec = append(dsec, data...)
		out = append(out, wasmSection(11, dsec)...)
	}

	return out
}

// yieldingBoot yields n times through lumen.yield with hints 1..n, then
// returns normally.
func yieldingBoot(n int) []byte {
	var body []byte
	for i := 1; i <= n; i++ {
		body = append(body, 0x41)
		body = append(body, sleb(int32(i))...)
		body = append(body, 0x10, 0x00)
	}
	return buildBootModule(
		[][]byte{typeI32},
		[]fixtureImport{{module: "lumen", field: "yield", typeIdx: 0}},
		body,
		nil,
	)
}

// trappingBoot raises an unhandled fault on its first statement.
func trappingBoot() []byte {
	return buildBootModule(nil, nil, []byte{0x00}, nil)
}

// restartingBoot schedules a restart value from its data segment and
// returns. payload is a CBOR-encoded variant.
func restartingBoot(payload []byte) []byte {
	body := []byte{0x41, 0x00} // ptr
	body = append(body, 0x41)
	body = append(body, sleb(int32(len(payload)))...)
	body = append(body, 0x10, 0x00)
	return buildBootModule(
		[][]byte{typeI32I32},
		[]fixtureImport{{module: "lumen", field: "set-restart", typeIdx: 0}},
		body,
		payload,
	)
}

// silentBoot returns immediately without yielding.
func silentBoot() []byte {
	return buildBootModule(nil, nil, nil, nil)
}

package iiif

// allJSONObjects scans raw for every top-level balanced "{...}" object,
// skipping over string literals so that braces inside quoted strings don't
// confuse the brace count. Used as the fallback when raw isn't itself a
// single JSON object: some servers embed the info.json body inside an
// HTML page rather than serving it bare.
func allJSONObjects(raw []byte) [][]byte {
	var objects [][]byte
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, b := range raw {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					objects = append(objects, raw[start:i+1])
					start = -1
				}
			}
		}
	}
	return objects
}

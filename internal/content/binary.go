package content

// binarySampleSize is the number of leading bytes inspected for NUL bytes.
const binarySampleSize = 8000

// IsBinaryContent reports whether captured command output looks binary.
// Output starting with a UTF-16 or UTF-32 byte order mark is treated as text.
func IsBinaryContent(data []byte) bool {
	if hasTextBOM(data) {
		return false
	}

	sampleSize := min(len(data), binarySampleSize)
	for i := range sampleSize {
		if data[i] == 0 {
			return true
		}
	}
	return false
}

func hasTextBOM(data []byte) bool {
	if len(data) >= 2 {
		if (data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF) {
			return true
		}
	}
	if len(data) >= 4 {
		if data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF {
			return true
		}
	}
	return false
}

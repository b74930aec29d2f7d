package protocol

// SplitAtoms tokenizes a data line into atoms.
//
// Runs of characters other than whitespace and '"' form an atom. A '"'
// opens a quoted atom holding everything up to the next '"', whitespace
// included and quotes excluded. Whitespace outside quotes only separates,
// it never produces an empty atom. An unterminated quote ends at the end
// of the line. There is no escape mechanism.
//
//	SplitAtoms(`eng-lat "Latin to English"`) // ["eng-lat", "Latin to English"]
//	SplitAtoms(`x "abc`)                     // ["x", "abc"]
func SplitAtoms(line string) []string {
	var atoms []string

	pos := 0
	for pos < len(line) {
		c := line[pos]

		if isSpace(c) {
			pos++
			continue
		}

		if c == Quote {
			end := pos + 1
			for end < len(line) && line[end] != Quote {
				end++
			}
			atoms = append(atoms, line[pos+1:end])
			// Skip closing quote, if present
			pos = end + 1
			continue
		}

		end := pos
		for end < len(line) && !isSpace(line[end]) && line[end] != Quote {
			end++
		}
		atoms = append(atoms, line[pos:end])
		pos = end
	}

	return atoms
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

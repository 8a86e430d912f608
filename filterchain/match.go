package filterchain

import "strings"

// Match reports whether path matches the Ant-style pattern: ? matches one
// character, * matches any run within a path segment, ** matches any number
// of segments.
func Match(pattern, path string) bool {
	if strings.HasPrefix(pattern, "/") != strings.HasPrefix(path, "/") {
		return false
	}

	pattDirs := tokenize(pattern)
	pathDirs := tokenize(path)

	pattStart, pattEnd := 0, len(pattDirs)-1
	pathStart, pathEnd := 0, len(pathDirs)-1

	// Leading segments up to the first **.
	for pattStart <= pattEnd && pathStart <= pathEnd {
		if pattDirs[pattStart] == "**" {
			break
		}
		if !matchSegment(pattDirs[pattStart], pathDirs[pathStart]) {
			return false
		}
		pattStart++
		pathStart++
	}

	if pathStart > pathEnd {
		// Path exhausted; remaining pattern must be empty or all **.
		if pattStart > pattEnd {
			return strings.HasSuffix(pattern, "/") == strings.HasSuffix(path, "/")
		}
		if pattStart == pattEnd && pattDirs[pattStart] == "*" && strings.HasSuffix(path, "/") {
			return true
		}
		return allDoubleStar(pattDirs[pattStart : pattEnd+1])
	}
	if pattStart > pattEnd {
		return false
	}

	// Trailing segments back to the last **.
	for pattStart <= pattEnd && pathStart <= pathEnd {
		if pattDirs[pattEnd] == "**" {
			break
		}
		if !matchSegment(pattDirs[pattEnd], pathDirs[pathEnd]) {
			return false
		}
		pattEnd--
		pathEnd--
	}
	if pathStart > pathEnd {
		return allDoubleStar(pattDirs[pattStart : pattEnd+1])
	}

	// Middle: anchor each literal run between ** groups.
	for pattStart != pattEnd && pathStart <= pathEnd {
		next := -1
		for i := pattStart + 1; i <= pattEnd; i++ {
			if pattDirs[i] == "**" {
				next = i
				break
			}
		}
		if next == pattStart+1 {
			// Consecutive **, skip.
			pattStart++
			continue
		}

		padLen := next - pattStart - 1
		strLen := pathEnd - pathStart + 1
		found := -1
	strLoop:
		for i := 0; i <= strLen-padLen; i++ {
			for j := 0; j < padLen; j++ {
				if !matchSegment(pattDirs[pattStart+j+1], pathDirs[pathStart+i+j]) {
					continue strLoop
				}
			}
			found = pathStart + i
			break
		}
		if found == -1 {
			return false
		}

		pattStart = next
		pathStart = found + padLen
	}

	return allDoubleStar(pattDirs[pattStart : pattEnd+1])
}

func allDoubleStar(dirs []string) bool {
	for _, d := range dirs {
		if d != "**" {
			return false
		}
	}
	return true
}

func tokenize(s string) []string {
	parts := strings.Split(s, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchSegment matches a single segment with ? and * wildcards.
func matchSegment(pattern, s string) bool {
	var pi, si int
	star, mark := -1, 0

	for si < len(s) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == s[si]):
			pi++
			si++
		case pi < len(pattern) && pattern[pi] == '*':
			star = pi
			mark = si
			pi++
		case star != -1:
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

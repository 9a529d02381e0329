package docx

import "bytes"

// span is a [start, end) byte range within a part.
type span [2]int

// elementRanges returns the byte ranges of every outermost occurrence of the
// given element within data, including its tags. Self-closing forms are
// included. Nesting of the same element (tables inside table cells, text-box
// paragraphs) is handled by depth counting, so nested occurrences are folded
// into their outermost ancestor's range.
func elementRanges(data []byte, tag string) []span {
	openTag := []byte("<" + tag)
	closeTag := []byte("</" + tag + ">")

	var ranges []span
	depth := 0
	start := 0

	for i := 0; i < len(data); {
		if bytes.HasPrefix(data[i:], closeTag) {
			if depth > 0 {
				depth--
				if depth == 0 {
					ranges = append(ranges, span{start, i + len(closeTag)})
				}
			}
			i += len(closeTag)
			continue
		}

		if bytes.HasPrefix(data[i:], openTag) && isNameBoundary(data, i+len(openTag)) {
			end := bytes.IndexByte(data[i:], '>')
			if end < 0 {
				break
			}
			end += i

			if data[end-1] == '/' { // self-closing
				if depth == 0 {
					ranges = append(ranges, span{i, end + 1})
				}
			} else {
				if depth == 0 {
					start = i
				}
				depth++
			}
			i = end + 1
			continue
		}

		i++
	}

	return ranges
}

// elementRangesWithin scans for elements inside an enclosing range,
// returning ranges in the part's coordinate space.
func elementRangesWithin(data []byte, within span, tag string) []span {
	inner := elementRanges(data[within[0]:within[1]], tag)
	for i := range inner {
		inner[i][0] += within[0]
		inner[i][1] += within[0]
	}
	return inner
}

// elementContent returns the text between the opening and closing tags of
// the element at r. Self-closing elements have no content.
func elementContent(data []byte, r span) []byte {
	open := bytes.IndexByte(data[r[0]:r[1]], '>')
	if open < 0 {
		return nil
	}
	contentStart := r[0] + open + 1
	if data[r[0]+open-1] == '/' { // self-closing
		return nil
	}
	contentEnd := bytes.LastIndexByte(data[r[0]:r[1]], '<')
	if contentEnd < 0 || r[0]+contentEnd < contentStart {
		return nil
	}
	return data[contentStart : r[0]+contentEnd]
}

// insideAny reports whether r lies entirely within any of the given ranges.
func insideAny(r span, ranges []span) bool {
	for _, outer := range ranges {
		if r[0] >= outer[0] && r[1] <= outer[1] {
			return true
		}
	}
	return false
}

// isNameBoundary reports whether the byte at pos terminates an element name,
// distinguishing <w:p from <w:pPr.
func isNameBoundary(data []byte, pos int) bool {
	if pos >= len(data) {
		return false
	}
	switch data[pos] {
	case ' ', '>', '/', '\t', '\r', '\n':
		return true
	}
	return false
}

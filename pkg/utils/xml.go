package utils

import (
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// XmlRecursiveSortElementsByTagName recursively sorts XML elements by tag
// name (then by name/index attribute text) so that documents with
// irrelevant ordering differences compare equal in tests.
func XmlRecursiveSortElementsByTagName(element *etree.Element) {
	slices.SortStableFunc(element.Child, func(i, j etree.Token) int {
		ci, oki := i.(*etree.Element)
		cj, okj := j.(*etree.Element)

		if oki && okj {
			comp := strings.Compare(ci.Tag, cj.Tag)
			if comp != 0 {
				return comp
			}
			attributes := []string{"name", "index"}
			for _, a := range attributes {
				if cic := ci.SelectAttr(a); cic != nil {
					cjc := cj.SelectAttr(a)
					if cjc == nil {
						return -1
					}
					return strings.Compare(cic.Value, cjc.Value)
				}
			}
		}
		return 0
	})

	for _, child := range element.Child {
		if celem, ok := child.(*etree.Element); ok {
			XmlRecursiveSortElementsByTagName(celem)
		}
	}
}

package render

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// numericBulletClass marks autonumber placeholders left for numbering pass.
const numericBulletClass = "numeric-bullet-style"

type numberFrame struct {
	scheme string
	level  int
	count  int
}

// numberer assigns counters to autonumber markers of a single container.
// Nested levels are kept on a stack so returning to a shallower level resumes
// its counter.
type numberer struct {
	stack []numberFrame
}

// next returns counter for a marker. start is the first value of a new run.
// A frame resumed after popping deeper levels keeps its scheme and continues
// counting whatever scheme the marker has.
func (n *numberer) next(scheme string, level, start int) int {
	popped := false
	for len(n.stack) > 0 && n.stack[len(n.stack)-1].level > level {
		n.stack = n.stack[:len(n.stack)-1]
		popped = true
	}
	if len(n.stack) == 0 || n.stack[len(n.stack)-1].level < level {
		n.stack = append(n.stack, numberFrame{scheme: scheme, level: level, count: start})
		return start
	}
	top := &n.stack[len(n.stack)-1]
	if !popped && top.scheme != scheme {
		top.scheme, top.count = scheme, start
		return start
	}
	top.count++
	return top.count
}

// applyNumbering fills autonumber markers with labels. Every text block and
// table cell is numbered independently, markers in document order.
func applyNumbering(root *etree.Element, labels *labelCache) {
	for _, c := range numberingContainers(root) {
		var n numberer
		for _, marker := range c.FindElements(".//span[@class='" + numericBulletClass + "']") {
			level, _ := strconv.Atoi(marker.SelectAttrValue("data-bulltlvl", "0"))
			start := 1
			if v, err := strconv.Atoi(marker.SelectAttrValue("data-bulltstart", "")); err == nil {
				start = v
			}
			scheme := marker.SelectAttrValue("data-bulltname", "")
			marker.SetText(labels.label(scheme, n.next(scheme, level, start)))
		}
	}
}

// numberingContainers lists table cells and non group blocks in document
// order.
func numberingContainers(root *etree.Element) []*etree.Element {
	var res []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			switch child.Tag {
			case "td":
				res = append(res, child)
			case "div":
				if classes := strings.Fields(child.SelectAttrValue("class", "")); hasClass(classes, "block") && !hasClass(classes, "group") {
					res = append(res, child)
				}
			}
			walk(child)
		}
	}
	walk(root)
	return res
}

func hasClass(classes []string, name string) bool {
	for _, c := range classes {
		if c == name {
			return true
		}
	}
	return false
}

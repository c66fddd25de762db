package pptx

// PlaceholderIndex allows lookup of layout and master shape tree nodes by
// shape id, placeholder idx and placeholder type. Only direct children of the
// shape tree are indexed. When several nodes share a key the last one wins.
type PlaceholderIndex struct {
	byID   map[string]*Node
	byIdx  map[string]*Node
	byType map[string]*Node
}

// NewPlaceholderIndex indexes top level nodes of a shape tree.
func NewPlaceholderIndex(tree []*Node) *PlaceholderIndex {
	ix := &PlaceholderIndex{
		byID:   make(map[string]*Node),
		byIdx:  make(map[string]*Node),
		byType: make(map[string]*Node),
	}
	for _, n := range tree {
		if n.ID != "" {
			ix.byID[n.ID] = n
		}
		if n.Placeholder == nil {
			continue
		}
		if n.Placeholder.Idx != "" {
			ix.byIdx[n.Placeholder.Idx] = n
		}
		if n.Placeholder.Type != "" {
			ix.byType[n.Placeholder.Type] = n
		}
	}
	return ix
}

// ByID returns node with the given shape id or nil.
func (ix *PlaceholderIndex) ByID(id string) *Node {
	if ix == nil {
		return nil
	}
	return ix.byID[id]
}

// ByIdx returns placeholder with the given idx or nil.
func (ix *PlaceholderIndex) ByIdx(idx string) *Node {
	if ix == nil {
		return nil
	}
	return ix.byIdx[idx]
}

// ByType returns placeholder of the given type or nil.
func (ix *PlaceholderIndex) ByType(typ string) *Node {
	if ix == nil {
		return nil
	}
	return ix.byType[typ]
}

// Match finds counterpart of a placeholder: by type when the placeholder
// declares one, otherwise by idx. Non placeholders match nothing.
func (ix *PlaceholderIndex) Match(ph *Placeholder) *Node {
	switch {
	case ix == nil || ph == nil:
		return nil
	case ph.Type != "":
		return ix.ByType(ph.Type)
	case ph.Idx != "":
		return ix.ByIdx(ph.Idx)
	}
	return nil
}

package convert

import "github.com/tessera-labs/tessera-go/internal/omr"

// The context chain records where an asset's lineage trail has reached so
// far. AppendElement always extends the single active chain at its deepest
// node; AddChildElement is the one operation that can branch.

// FindDeepest follows the last ParentElement entry until it reaches a node
// with no children. A childless element returns itself.
func FindDeepest(element *Element) *Element {
	if element == nil {
		return nil
	}
	children := element.ParentElement
	if len(children) == 0 {
		return element
	}
	return FindDeepest(children[len(children)-1])
}

// AppendElement wraps the entity and attaches it to wherever the chain of
// the asset's last context root currently ends. An empty context makes the
// new element the sole root.
func AppendElement(asset *AssetElement, entity omr.EntityDetail) {
	if asset == nil {
		return
	}
	elements := []*Element{BuildAssetElements(entity)}
	if len(asset.Context) == 0 {
		asset.Context = elements
		return
	}
	leaf := FindDeepest(asset.Context[len(asset.Context)-1])
	leaf.ParentElement = elements
}

// LastNode returns the deepest node of the asset's last context root, or
// nil when the context is empty.
func LastNode(asset *AssetElement) *Element {
	if asset == nil || len(asset.Context) == 0 {
		return nil
	}
	return FindDeepest(asset.Context[len(asset.Context)-1])
}

// AddChildElement attaches children to a parent, appending when the parent
// already has children.
func AddChildElement(parent *Element, children []*Element) {
	if parent == nil {
		return
	}
	if parent.ParentElement != nil {
		parent.ParentElement = append(parent.ParentElement, children...)
		return
	}
	parent.ParentElement = children
}

// AddContextElement appends a new root-level element to the asset's
// context without touching the existing chain.
func AddContextElement(asset *AssetElement, entity omr.EntityDetail) {
	if asset == nil {
		return
	}
	asset.Context = append(asset.Context, BuildAssetElements(entity))
}

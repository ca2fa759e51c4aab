package models

// ServiceCategory is a node of the repair category tree
type ServiceCategory struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Slug     string `json:"slug" db:"slug"`
	ParentID *int64 `json:"parent_id,omitempty" db:"parent_id"`
}

// CategoryNode is a category with its resolved children
type CategoryNode struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Children []*CategoryNode `json:"children"`
}

// BuildCategoryTree assembles a nested tree from a flat category list.
// Nodes referencing a missing parent are treated as roots. A parent
// cycle is broken at its smallest id: that node is promoted to root so
// the cycle's members stay visible instead of vanishing from the tree.
func BuildCategoryTree(categories []ServiceCategory) []*CategoryNode {
	nodes := make(map[int64]*CategoryNode, len(categories))
	parents := make(map[int64]*int64, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{ID: c.ID, Name: c.Name, Children: []*CategoryNode{}}
		parents[c.ID] = c.ParentID
	}

	promoted := findCycleBreaks(categories, parents)

	var roots []*CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID == nil || promoted[c.ID] {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// findCycleBreaks walks each node's ancestor chain and marks, for every
// parent cycle found, the smallest id in the cycle for promotion to root
func findCycleBreaks(categories []ServiceCategory, parents map[int64]*int64) map[int64]bool {
	promoted := make(map[int64]bool)
	for _, c := range categories {
		path := []int64{c.ID}
		index := map[int64]int{c.ID: 0}
		for {
			p := parents[path[len(path)-1]]
			if p == nil {
				break
			}
			if _, ok := parents[*p]; !ok {
				break
			}
			if at, ok := index[*p]; ok {
				cycle := path[at:]
				min := cycle[0]
				for _, id := range cycle {
					if id < min {
						min = id
					}
				}
				promoted[min] = true
				break
			}
			index[*p] = len(path)
			path = append(path, *p)
		}
	}
	return promoted
}

package control

import (
	"slices"

	"github.com/tsawler/formctl/model"
)

// GroupIndex maps control groups to their member control ids and back.
// Both directions are updated together.
type GroupIndex struct {
	members map[string][]string
	groupOf map[string]string
}

// NewGroupIndex creates an empty index.
func NewGroupIndex() *GroupIndex {
	return &GroupIndex{
		members: make(map[string][]string),
		groupOf: make(map[string]string),
	}
}

// Add records controlID as a member of groupID, moving it out of any
// previous group.
func (g *GroupIndex) Add(groupID, controlID string) {
	if groupID == "" || controlID == "" {
		return
	}
	if prev, ok := g.groupOf[controlID]; ok {
		if prev == groupID {
			return
		}
		g.RemoveMember(controlID)
	}
	g.members[groupID] = append(g.members[groupID], controlID)
	g.groupOf[controlID] = groupID
}

// RemoveMember drops controlID from its group. Empty groups are removed.
func (g *GroupIndex) RemoveMember(controlID string) {
	groupID, ok := g.groupOf[controlID]
	if !ok {
		return
	}
	delete(g.groupOf, controlID)
	members := slices.DeleteFunc(g.members[groupID], func(id string) bool { return id == controlID })
	if len(members) == 0 {
		delete(g.members, groupID)
		return
	}
	g.members[groupID] = members
}

// RemoveGroup drops a group and returns its former members.
func (g *GroupIndex) RemoveGroup(groupID string) []string {
	members := g.members[groupID]
	for _, id := range members {
		delete(g.groupOf, id)
	}
	delete(g.members, groupID)
	return members
}

// Members returns the member control ids of a group in insertion order.
func (g *GroupIndex) Members(groupID string) []string {
	return slices.Clone(g.members[groupID])
}

// GroupOf returns the group of a control.
func (g *GroupIndex) GroupOf(controlID string) (string, bool) {
	id, ok := g.groupOf[controlID]
	return id, ok
}

// Len returns the number of groups.
func (g *GroupIndex) Len() int {
	return len(g.members)
}

// Rebuild clears the index and fills it from the given lists, descending
// into tables.
func (g *GroupIndex) Rebuild(lists ...model.ElementList) {
	clear(g.members)
	clear(g.groupOf)
	for _, list := range lists {
		walkElements(list, 0, func(_ model.ElementList, _ int, e *model.Element) {
			g.Add(e.ControlGroupID, e.ControlID)
		})
	}
}

// walkElements calls fn for every element of list and of nested table
// cells, up to MaxTableDepth levels of tables.
func walkElements(list model.ElementList, depth int, fn func(list model.ElementList, index int, e *model.Element)) {
	for i, e := range list {
		if e.IsTable() && depth < MaxTableDepth {
			for _, row := range e.Rows {
				for _, cell := range row.Cells {
					walkElements(cell.Value, depth+1, fn)
				}
			}
		}
		fn(list, i, e)
	}
}

package ui

import (
	"fmt"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

// GroupItem wraps model.Group to implement list.Item
type GroupItem struct {
	Group model.Group
}

func (i GroupItem) Title() string {
	return i.Group.Name
}

func (i GroupItem) Description() string {
	return fmt.Sprintf("%s • %d members", i.Group.PrivacyLabel(), i.Group.MembersCount)
}

func (i GroupItem) FilterValue() string {
	return i.Group.Name
}

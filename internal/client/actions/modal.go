package actions

import "fmt"

// ModalKind identifies the dialog currently open on a Surface.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalCopy
	ModalMove
	ModalDelete
	ModalRename
	ModalProperties
	ModalNewFolder
)

func (k ModalKind) String() string {
	switch k {
	case ModalNone:
		return "none"
	case ModalCopy:
		return "copy"
	case ModalMove:
		return "move"
	case ModalDelete:
		return "delete"
	case ModalRename:
		return "rename"
	case ModalProperties:
		return "properties"
	case ModalNewFolder:
		return "new-folder"
	default:
		return fmt.Sprintf("modal(%d)", int(k))
	}
}

// Action is a menu entry. Several actions can share a modal kind: deleting
// the selected files of a folder and deleting the folder itself both open the
// delete confirmation.
type Action string

const (
	ActionCopy         Action = "copy"
	ActionMove         Action = "move"
	ActionDelete       Action = "delete"
	ActionDeleteFolder Action = "delete-folder"
	ActionRename       Action = "rename"
	ActionProperties   Action = "properties"
	ActionNewFolder    Action = "new-folder"
)

func (a Action) modal() ModalKind {
	switch a {
	case ActionCopy:
		return ModalCopy
	case ActionMove:
		return ModalMove
	case ActionDelete, ActionDeleteFolder:
		return ModalDelete
	case ActionRename:
		return ModalRename
	case ActionProperties:
		return ModalProperties
	case ActionNewFolder:
		return ModalNewFolder
	default:
		return ModalNone
	}
}

// MenuItem is one row of a file or folder menu.
type MenuItem struct {
	Action   Action
	Label    string
	Disabled bool
}

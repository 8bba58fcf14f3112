package director

import "github.com/pkg/errors"

var (
	// ErrInvalidEntityDefinition is returned when a factory probe has no name
	ErrInvalidEntityDefinition = errors.New("invalid entity definition")

	// ErrUnknownEntityType is returned by Spawn, Sync and Add for unregistered types
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrTooManyGroups is returned when more distinct collision groups are registered than a GroupMask holds
	ErrTooManyGroups = errors.New("too many collision groups")
)

func unknownType(op, name string) error {
	return errors.Wrapf(ErrUnknownEntityType, "%s %q", op, name)
}

package policy

import (
	"fmt"

	"github.com/Skotchmaster/campus_complaints/internal/credentials"
	"github.com/Skotchmaster/campus_complaints/internal/domain"
)

type Action string

const (
	ActionSubmit   Action = "complaint.submit"
	ActionListMine Action = "complaint.list_mine"
	ActionRead     Action = "complaint.read"
	ActionListAll  Action = "complaint.list_all"
	ActionUpdate   Action = "complaint.update"
	ActionDelete   Action = "complaint.delete"
	ActionStats    Action = "complaint.stats"
	ActionSearch   Action = "complaint.search"
)

// Authorize decides whether the holder of claims may perform action on a
// resource owned by ownerID. ownerID is ignored for actions that do not
// target a single complaint. Missing claims yield ErrUnauthorized, a role
// or ownership mismatch yields ErrForbidden.
func Authorize(claims *credentials.Claims, action Action, ownerID string) error {
	if claims == nil || claims.UserID == "" {
		return fmt.Errorf("%s: %w", action, domain.ErrUnauthorized)
	}

	switch claims.Role {
	case domain.RoleAdmin:
		switch action {
		case ActionListAll, ActionRead, ActionUpdate, ActionDelete, ActionStats, ActionSearch:
			return nil
		}
	case domain.RoleStudent:
		switch action {
		case ActionSubmit, ActionListMine:
			return nil
		case ActionRead:
			if ownerID != "" && ownerID == claims.UserID {
				return nil
			}
		}
	default:
		return fmt.Errorf("unknown role %q: %w", claims.Role, domain.ErrUnauthorized)
	}

	return fmt.Errorf("%s not allowed for %s: %w", action, claims.Role, domain.ErrForbidden)
}

package actor

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/user"
)

// Actor is the authenticated identity behind an admin request, read from
// the verified JWT claims.
type Actor struct {
	UserID     string
	CompanyID  string
	Role       user.Role
	EmployeeID *string
}

// FromContext extracts the actor from the request's verified JWT claims.
func FromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Actor{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	act := Actor{
		UserID:    userID,
		CompanyID: companyID,
	}
	if role, ok := claims["role"].(string); ok {
		act.Role = user.Role(role)
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		act.EmployeeID = &employeeID
	}

	return act, nil
}

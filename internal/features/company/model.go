package company

import "time"

// MasterAccountName marks the dummy company used for system administration;
// it is filtered out of the super-admin switcher.
const MasterAccountName = "[System Master Account]"

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

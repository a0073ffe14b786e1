package models

// CapEditOthersPosts gates feedback moderation and the admin list.
const CapEditOthersPosts = "edit_others_posts"

// Principal is the authenticated caller of an admin request.
type Principal struct {
	Email        string   `json:"email"`
	Capabilities []string `json:"capabilities"`
}

func (p *Principal) Can(capability string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

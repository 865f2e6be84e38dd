package user

type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type UpdateRequest struct {
	Name string `json:"name"`
	// Password is optional; empty means unchanged.
	Password string `json:"password,omitempty"`
}

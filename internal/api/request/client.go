package request

type CreateClientRequest struct {
	Name string `json:"name"`
}

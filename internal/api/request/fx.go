package request

type UpdateFxConfigRequest struct {
	BaseURL            string  `json:"baseUrl"`
	APIToken           *string `json:"apiToken,omitempty"`
	AutoRefreshEnabled bool    `json:"autoRefreshEnabled"`
}

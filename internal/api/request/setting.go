package request

type PutSettingRequest struct {
	Value   string `json:"value"`
	Encrypt bool   `json:"encrypt"`
}

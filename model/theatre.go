package model

type Theatre struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	ImageUrl  string `json:"image_url"`
	Rating    string `json:"rating"`
	Location  string `json:"location"`
	CreatedAt string `json:"created_at"`
}

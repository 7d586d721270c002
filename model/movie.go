package model

// Show is a single scheduled screening of a movie at a theatre. Timestamps are
// kept as the ISO-8601 strings the service sends; the date portion before 'T'
// is the service-local calendar date.
type Show struct {
	Id        string `json:"id"`
	TheatreId string `json:"theatre_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type Movie struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	ImageUrl  string `json:"image_url"`
	CreatedAt string `json:"created_at"`
	Shows     []Show `json:"shows"`
}

package product

import "strconv"

// PlaceholderImage is shown while a product's media is unknown or missing.
const PlaceholderImage = "assets/images/placeholder.png"

// Product mirrors the backend DTO. Quantity and price arrive as strings on
// the wire; use QuantityValue/PriceValue for arithmetic.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	Price       string  `json:"price"`
	UserID      string  `json:"userId"`
	Images      []Media `json:"images"`
}

type Media struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	ProductID string `json:"productId"`
}

func (p Product) PriceValue() float64 {
	v, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return 0
	}
	return v
}

func (p Product) QuantityValue() int {
	v, err := strconv.Atoi(p.Quantity)
	if err != nil {
		return 0
	}
	return v
}

func (p Product) FirstImageURL() string {
	if len(p.Images) > 0 && p.Images[0].ImageURL != "" {
		return p.Images[0].ImageURL
	}
	return PlaceholderImage
}

// Page is the backend's pagination envelope. The view mirrors it verbatim;
// it is the authoritative pagination state.
type Page struct {
	Content          []Product `json:"content"`
	TotalElements    int64     `json:"totalElements"`
	TotalPages       int       `json:"totalPages"`
	Size             int       `json:"size"`
	Number           int       `json:"number"`
	NumberOfElements int       `json:"numberOfElements"`
	First            bool      `json:"first"`
	Last             bool      `json:"last"`
	Empty            bool      `json:"empty"`
}

type QueryParams struct {
	Page          int
	Size          int
	SortBy        string
	SortDirection string
}

type SearchParams struct {
	Query    string
	MinPrice *float64
	MaxPrice *float64
}

// Transcription is the STT service's response for a voice-search recording.
type Transcription struct {
	Transcription string  `json:"transcription"`
	Translation   string  `json:"translation,omitempty"`
	Language      string  `json:"language"`
	Duration      float64 `json:"duration"`
}

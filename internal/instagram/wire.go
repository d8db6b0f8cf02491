package instagram

import (
	"strconv"
	"strings"

	"github.com/igpeek/igpeek/internal/media"
)

// Private-API media_type discriminator values.
const (
	wireMediaTypePhoto    = 1
	wireMediaTypeVideo    = 2
	wireMediaTypeCarousel = 8
)

type wireVariant struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

type wireMedia struct {
	ID            string `json:"id"`
	MediaType     int    `json:"media_type"`
	ImageVersions struct {
		Candidates []wireVariant `json:"candidates"`
	} `json:"image_versions2"`
	VideoVersions []wireVariant `json:"video_versions"`
	CarouselMedia []wireMedia   `json:"carousel_media"`
}

type wireFeed struct {
	Items []wireMedia `json:"items"`
}

type wireTagFeed struct {
	Items       []wireMedia `json:"items"`
	RankedItems []wireMedia `json:"ranked_items"`
}

type wireUser struct {
	PK        int64  `json:"pk"`
	Username  string `json:"username"`
	IsPrivate bool   `json:"is_private"`
}

type wireUserInfo struct {
	User wireUser `json:"user"`
}

type wireUserSearch struct {
	Users []wireUser `json:"users"`
}

type wireError struct {
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
	Status    string `json:"status"`
}

func (u wireUser) toAccount() Account {
	return Account{
		ID:     strconv.FormatInt(u.PK, 10),
		Handle: u.Username,
	}
}

func (m wireMedia) toSingle() media.Single {
	return media.Single{
		Images: toVariants(m.ImageVersions.Candidates),
		Videos: toVariants(m.VideoVersions),
	}
}

func (m wireMedia) toItem() media.Item {
	if m.MediaType == wireMediaTypeCarousel && len(m.CarouselMedia) > 0 {
		children := make([]media.Single, 0, len(m.CarouselMedia))
		for _, child := range m.CarouselMedia {
			children = append(children, child.toSingle())
		}
		return media.Item{Children: children}
	}
	return media.Item{Media: m.toSingle()}
}

func toVariants(vs []wireVariant) []media.Variant {
	if len(vs) == 0 {
		return nil
	}
	out := make([]media.Variant, 0, len(vs))
	for _, v := range vs {
		out = append(out, media.Variant{Width: v.Width, Height: v.Height, URL: v.URL})
	}
	return out
}

func toItems(ms []wireMedia) []media.Item {
	items := make([]media.Item, 0, len(ms))
	for _, m := range ms {
		items = append(items, m.toItem())
	}
	return items
}

// mapAPIError converts a private-API error payload into the typed taxonomy.
func mapAPIError(statusCode int, e wireError) error {
	msg := strings.ToLower(e.Message)
	switch {
	case statusCode == 404, strings.Contains(msg, "user not found"):
		return ErrAccountNotFound
	case strings.Contains(msg, "private"), strings.Contains(msg, "not authorized to view"):
		return ErrAccountPrivate
	}
	return &APIError{StatusCode: statusCode, Message: e.Message, ErrorType: e.ErrorType}
}

// APIError is an unexpected private-API failure.
type APIError struct {
	StatusCode int
	Message    string
	ErrorType  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "instagram api error: status " + strconv.Itoa(e.StatusCode)
	}
	return "instagram api error: " + e.Message
}

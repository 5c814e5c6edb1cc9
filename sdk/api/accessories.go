package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// AccessoryTypes is the catalogue of slots an Accessory can occupy on a
// mascot. The names are the ones the companion app uses.
var AccessoryTypes = []string{
	"Backgrounds",
	"Shirts",
	"SkinColor",
	"Bigode",
	"Cachecol",
	"Chapeu",
	"Ouvidos",
}

// Accessory is a decorative item that Users can buy with points and equip on
// their mascot.
type Accessory struct {
	// ID is the backend-assigned identifier.
	ID string `json:"_id,omitempty"`
	// Name is the human readable name of the Accessory.
	Name string `json:"name"`
	// Type is one of AccessoryTypes.
	Type string `json:"type"`
	// Value is the price of the Accessory, in points.
	Value int `json:"value"`
	// Src is the URL of the Accessory's image.
	Src string `json:"src"`
}

// AccessoryForm holds the editable fields of an Accessory.
type AccessoryForm struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value *int   `json:"value"`
	Src   string `json:"src"`
}

// AccessoryStats are aggregate counters about Accessories.
type AccessoryStats struct {
	TotalAccessories int `json:"totalAccessories"`
}

// AccessoriesClient is the specialized client for managing Accessories with
// the YU API.
type AccessoriesClient interface {
	// List returns all Accessories.
	List(context.Context) ([]Accessory, error)
	// Create creates a new Accessory and returns it as stored by the backend.
	Create(context.Context, AccessoryForm) (Accessory, error)
	// Update replaces the Accessory with the given identifier.
	Update(context.Context, string, AccessoryForm) (Accessory, error)
	// Delete deletes the Accessory with the given identifier.
	Delete(context.Context, string) error
	// Stats returns aggregate counters about Accessories.
	Stats(context.Context) (AccessoryStats, error)
}

type accessoriesClient struct {
	*baseClient
}

// NewAccessoriesClient returns a specialized client for managing Accessories.
func NewAccessoriesClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) AccessoriesClient {
	return &accessoriesClient{
		baseClient: newBaseClient(apiAddress, tokens, allowInsecure),
	}
}

func (a *accessoriesClient) List(ctx context.Context) ([]Accessory, error) {
	accessories := []Accessory{}
	return accessories, a.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         "accessories",
			successCodes: []int{http.StatusOK},
			decode:       listDecoder("accessories", &accessories),
		},
	)
}

func (a *accessoriesClient) Create(
	ctx context.Context,
	form AccessoryForm,
) (Accessory, error) {
	accessory := Accessory{}
	return accessory, a.executeRequest(
		ctx,
		outboundRequest{
			method:     http.MethodPost,
			path:       "accessories",
			reqBodyObj: form,
			decode:     itemDecoder("accessory", &accessory),
		},
	)
}

func (a *accessoriesClient) Update(
	ctx context.Context,
	id string,
	form AccessoryForm,
) (Accessory, error) {
	accessory := Accessory{}
	return accessory, a.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodPut,
			path:         fmt.Sprintf("accessories/%s", id),
			reqBodyObj:   form,
			successCodes: []int{http.StatusOK},
			decode:       itemDecoder("accessory", &accessory),
		},
	)
}

func (a *accessoriesClient) Delete(ctx context.Context, id string) error {
	return a.executeRequest(
		ctx,
		outboundRequest{
			method: http.MethodDelete,
			path:   fmt.Sprintf("accessories/%s", id),
		},
	)
}

func (a *accessoriesClient) Stats(ctx context.Context) (AccessoryStats, error) {
	stats := struct {
		TotalAccessories *int `json:"totalAccessories"`
	}{}
	if err := a.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         "accessories/stats",
			successCodes: []int{http.StatusOK},
			decode:       objectDecoder(&stats),
		},
	); err != nil {
		return AccessoryStats{}, err
	}
	if stats.TotalAccessories == nil {
		return AccessoryStats{},
			errors.New("unexpected accessory stats response format")
	}
	return AccessoryStats{TotalAccessories: *stats.TotalAccessories}, nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
)

// PresetMessage is a canned chat line the mascot can send.
type PresetMessage struct {
	ID      string `json:"_id,omitempty"`
	Message string `json:"message"`
}

// PresetMessageForm holds the editable fields of a PresetMessage.
type PresetMessageForm struct {
	Message string `json:"message"`
}

// PresetMessagesClient is the specialized client for managing PresetMessages
// with the YU API.
type PresetMessagesClient interface {
	List(context.Context) ([]PresetMessage, error)
	Create(context.Context, PresetMessageForm) (PresetMessage, error)
	Update(context.Context, string, PresetMessageForm) (PresetMessage, error)
	Delete(context.Context, string) error
}

type presetMessagesClient struct {
	*baseClient
}

// NewPresetMessagesClient returns a specialized client for managing
// PresetMessages.
func NewPresetMessagesClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) PresetMessagesClient {
	return &presetMessagesClient{
		baseClient: newBaseClient(apiAddress, tokens, allowInsecure),
	}
}

func (p *presetMessagesClient) List(
	ctx context.Context,
) ([]PresetMessage, error) {
	messages := []PresetMessage{}
	return messages, p.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         "preset-messages",
			successCodes: []int{http.StatusOK},
			decode:       listDecoder("messages", &messages),
		},
	)
}

// The wrapper field and the entity's text field are both called "message";
// itemDecoder only unwraps when "message" holds an object, which keeps the
// bare form decodable.
func (p *presetMessagesClient) Create(
	ctx context.Context,
	form PresetMessageForm,
) (PresetMessage, error) {
	message := PresetMessage{}
	return message, p.executeRequest(
		ctx,
		outboundRequest{
			method:     http.MethodPost,
			path:       "preset-messages",
			reqBodyObj: form,
			decode:     itemDecoder("message", &message),
		},
	)
}

func (p *presetMessagesClient) Update(
	ctx context.Context,
	id string,
	form PresetMessageForm,
) (PresetMessage, error) {
	message := PresetMessage{}
	return message, p.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodPut,
			path:         fmt.Sprintf("preset-messages/%s", id),
			reqBodyObj:   form,
			successCodes: []int{http.StatusOK},
			decode:       itemDecoder("message", &message),
		},
	)
}

func (p *presetMessagesClient) Delete(ctx context.Context, id string) error {
	return p.executeRequest(
		ctx,
		outboundRequest{
			method: http.MethodDelete,
			path:   fmt.Sprintf("preset-messages/%s", id),
		},
	)
}

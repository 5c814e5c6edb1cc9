package pages

import (
	"context"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/sdk/api"
)

// PresetMessagesPage is the model behind the Preset Messages screen.
type PresetMessagesPage struct {
	client   api.PresetMessagesClient
	mu       sync.RWMutex
	messages []api.PresetMessage
}

// NewPresetMessagesPage returns an empty PresetMessagesPage.
func NewPresetMessagesPage(
	client api.PresetMessagesClient,
) *PresetMessagesPage {
	return &PresetMessagesPage{
		client:   client,
		messages: []api.PresetMessage{},
	}
}

// Load replaces the list with the backend's. On failure the list is left
// as it was.
func (p *PresetMessagesPage) Load(ctx context.Context) error {
	messages, err := p.client.List(ctx)
	if err != nil {
		glog.Errorf("error fetching preset messages: %s", err)
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = messages
	return nil
}

// Messages returns the listed PresetMessages, oldest first.
func (p *PresetMessagesPage) Messages() []api.PresetMessage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	messages := make([]api.PresetMessage, len(p.messages))
	copy(messages, p.messages)
	return messages
}

// Save updates the PresetMessage with the given id or, when id is empty,
// creates a new one and appends it to the list. The text is trimmed before it
// is validated and sent.
func (p *PresetMessagesPage) Save(
	ctx context.Context,
	id string,
	form api.PresetMessageForm,
) (Notification, error) {
	form.Message = strings.TrimSpace(form.Message)
	if id != "" {
		if err := validate(
			presetMessageSchemaLoader,
			form,
			"Mensagem não pode ficar vazia.",
		); err != nil {
			return invalid(err), err
		}
		message, err := p.client.Update(ctx, id, form)
		if err != nil {
			return failed(err, "Erro ao editar mensagem."), err
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		for i := range p.messages {
			if p.messages[i].ID == id {
				p.messages[i] = message
			}
		}
		return succeeded("Mensagem editada com sucesso!"), nil
	}
	if err := validate(
		presetMessageSchemaLoader,
		form,
		"Escreva uma mensagem antes de enviar.",
	); err != nil {
		return invalid(err), err
	}
	message, err := p.client.Create(ctx, form)
	if err != nil {
		return failed(err, "Erro ao criar mensagem."), err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	return succeeded("Mensagem criada com sucesso!"), nil
}

// Delete deletes the PresetMessage with the given id. It is removed from the
// list only if the backend confirms.
func (p *PresetMessagesPage) Delete(
	ctx context.Context,
	id string,
) (Notification, error) {
	if err := p.client.Delete(ctx, id); err != nil {
		return failed(err, "Erro ao eliminar mensagem."), err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	messages := make([]api.PresetMessage, 0, len(p.messages))
	for _, message := range p.messages {
		if message.ID != id {
			messages = append(messages, message)
		}
	}
	p.messages = messages
	return succeeded("Mensagem eliminada com sucesso!"), nil
}

package api

// Client is the general interface for the YU API. It does little more than
// expose functions for obtaining more specialized clients for different areas
// of concern, like User management or Accessory management.
type Client interface {
	// Accessories returns a specialized client for Accessory management.
	Accessories() AccessoriesClient
	// PresetMessages returns a specialized client for PresetMessage
	// management.
	PresetMessages() PresetMessagesClient
	// Tasks returns a specialized client for Task management.
	Tasks() TasksClient
	// Users returns a specialized client for User management.
	Users() UsersClient
}

type client struct {
	accessoriesClient    AccessoriesClient
	presetMessagesClient PresetMessagesClient
	tasksClient          TasksClient
	usersClient          UsersClient
}

// NewClient returns a YU API client. Every request it issues asks tokens for
// the current bearer token first.
func NewClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) Client {
	base := newBaseClient(apiAddress, tokens, allowInsecure)
	return &client{
		accessoriesClient:    &accessoriesClient{baseClient: base},
		presetMessagesClient: &presetMessagesClient{baseClient: base},
		tasksClient:          &tasksClient{baseClient: base},
		usersClient:          &usersClient{baseClient: base},
	}
}

func (c *client) Accessories() AccessoriesClient {
	return c.accessoriesClient
}

func (c *client) PresetMessages() PresetMessagesClient {
	return c.presetMessagesClient
}

func (c *client) Tasks() TasksClient {
	return c.tasksClient
}

func (c *client) Users() UsersClient {
	return c.usersClient
}

package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Action is what happens when an item is clicked.
type Action interface {
	Name() string
}

// QuitAction terminates the application.
type QuitAction struct{}

// OpenAction opens a URL, file or application.
type OpenAction struct {
	Target string `mapstructure:"target"`
	App    string `mapstructure:"app"`
}

// NotifyAction posts a notification.
type NotifyAction struct {
	Title    string `mapstructure:"title"`
	Subtitle string `mapstructure:"subtitle"`
	Text     string `mapstructure:"text"`
	Image    string `mapstructure:"image"`
}

func (QuitAction) Name() string   { return "quit" }
func (OpenAction) Name() string   { return "open" }
func (NotifyAction) Name() string { return "notify" }

// Decode returns the item's action with its "with" parameters applied. An
// item without an action decodes to nil.
func (i ItemConfig) Decode() (Action, error) {
	var action Action
	switch i.Action {
	case "":
		if len(i.With) > 0 {
			return nil, fmt.Errorf("parameters without an action")
		}
		return nil, nil
	case "quit":
		return QuitAction{}, nil
	case "open":
		var a OpenAction
		if err := decode(i.With, &a); err != nil {
			return nil, err
		}
		if a.Target == "" {
			return nil, fmt.Errorf("open: target is required")
		}
		action = a
	case "notify":
		var a NotifyAction
		if err := decode(i.With, &a); err != nil {
			return nil, err
		}
		if a.Title == "" {
			a.Title = i.Title
		}
		action = a
	default:
		return nil, fmt.Errorf("unknown action: %s", i.Action)
	}
	return action, nil
}

func decode(params map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}

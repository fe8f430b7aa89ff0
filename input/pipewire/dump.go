package pipewire

import (
	"context"
	"encoding/json"
	"os/exec"

	"github.com/pkg/errors"
)

type pwObjects []pwObject

func pwDump(ctx context.Context) (pwObjects, error) {
	cmd := exec.CommandContext(ctx, "pw-dump")

	dumpOutput, err := cmd.Output()
	if err != nil {
		var execErr *exec.ExitError
		if errors.As(err, &execErr) {
			return nil, errors.Wrapf(err, "failed to run pw-dump: %s", execErr.Stderr)
		}
		return nil, errors.Wrap(err, "failed to run pw-dump")
	}

	return parseDump(dumpOutput)
}

func parseDump(data []byte) (pwObjects, error) {
	var dump pwObjects
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, errors.Wrap(err, "failed to parse pw-dump output")
	}

	return dump, nil
}

// Filter filters for the objects that satisfy every f.
func (d pwObjects) Filter(fns ...func(pwObject) bool) pwObjects {
	filtered := make(pwObjects, 0, len(d))
loop:
	for _, obj := range d {
		for _, f := range fns {
			if !f(obj) {
				continue loop
			}
		}
		filtered = append(filtered, obj)
	}
	return filtered
}

// Sources returns the capture nodes, in dump order.
func (d pwObjects) Sources() pwObjects {
	return d.Filter(func(o pwObject) bool {
		return o.Type == pwInterfaceNode && o.Info.Props.MediaClass == pwAudioSource
	})
}

type pwObjectID int64

type pwObjectType string

const (
	pwInterfaceNode pwObjectType = "PipeWire:Interface:Node"
)

type pwObject struct {
	ID   pwObjectID   `json:"id"`
	Type pwObjectType `json:"type"`
	Info struct {
		Props pwNodeProps `json:"props"`
	} `json:"info"`
}

type pwNodeProps struct {
	NodeName        string `json:"node.name"`
	NodeDescription string `json:"node.description"`
	MediaClass      string `json:"media.class"`
	AudioChannels   int    `json:"audio.channels"`
}

// media classes
const (
	pwAudioSource string = "Audio/Source"
)

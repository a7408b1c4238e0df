package studio

import (
	"context"
	"fmt"

	"github.com/phambaophuc/ai-image-studio/internal/models"
)

type CommandKind int

const (
	CmdGeneratePrompt CommandKind = iota
	CmdSubmitBatch
	CmdPreview
	CmdClosePreview
	CmdDownload
	CmdShare
	CmdTapShare
	CmdDismissBanner
	CmdDismissAlert
)

var commandNames = map[CommandKind]string{
	CmdGeneratePrompt: "generate_prompt",
	CmdSubmitBatch:    "submit_batch",
	CmdPreview:        "preview",
	CmdClosePreview:   "close_preview",
	CmdDownload:       "download",
	CmdShare:          "share",
	CmdTapShare:       "tap_share",
	CmdDismissBanner:  "dismiss_banner",
	CmdDismissAlert:   "dismiss_alert",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Command is one user action on the page.
type Command struct {
	Kind      CommandKind
	Request   models.GenerationRequest
	CardIndex int
	Target    ShareTarget
}

// File is a download ready to be written to the client.
type File struct {
	Name string
	Data []byte
}

type Result struct {
	Prompt   string
	BatchID  string
	Preview  *models.Preview
	Share    *models.ShareOutcome
	File     *File
	Snapshot models.StudioSnapshot
}

// Dispatch routes cmd to its handler and returns the state that follows it.
func (s *Studio) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	var (
		res Result
		err error
	)

	switch cmd.Kind {
	case CmdGeneratePrompt:
		res.Prompt, err = s.GeneratePrompt(ctx)
	case CmdSubmitBatch:
		res.BatchID, err = s.SubmitBatch(cmd.Request)
	case CmdPreview:
		var p models.Preview
		if p, err = s.Preview(cmd.CardIndex); err == nil {
			res.Preview = &p
		}
	case CmdClosePreview:
		s.ClosePreview()
	case CmdDownload:
		var f File
		if f.Data, f.Name, err = s.Download(cmd.CardIndex); err == nil {
			res.File = &f
		}
	case CmdShare:
		err = s.Share(cmd.CardIndex)
	case CmdTapShare:
		if cmd.Target == nil {
			return res, fmt.Errorf("tap share requires a target")
		}
		var out models.ShareOutcome
		if out, err = s.TapShare(ctx, cmd.CardIndex, cmd.Target); err == nil {
			res.Share = &out
		}
	case CmdDismissBanner:
		s.DismissBanner()
	case CmdDismissAlert:
		s.DismissAlert()
	default:
		return res, fmt.Errorf("unknown command %s", cmd.Kind)
	}

	res.Snapshot = s.Snapshot()
	return res, err
}

package models

import "encoding/json"

// Settings is the persisted process-wide configuration document. Besides the
// fields the daemon owns, the document may carry keys written by the desktop
// shell (UI state and the like); those are kept in extra and written back
// verbatim on save so a read-modify-write cycle never drops them.
type Settings struct {
	SafeMode                     bool
	CommandsPath                 *string
	AccessibilityNoticeDismissed *bool

	extra map[string]json.RawMessage
}

const (
	keySafeMode            = "safe_mode"
	keyCommandsPath        = "commands_path"
	keyAccessibilityNotice = "accessibility_notice_dismissed"
)

// UnmarshalJSON decodes the known fields and stashes every other key untouched.
func (s *Settings) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Settings{}
	if v, ok := raw[keySafeMode]; ok {
		if err := json.Unmarshal(v, &s.SafeMode); err != nil {
			return err
		}
		delete(raw, keySafeMode)
	}
	if v, ok := raw[keyCommandsPath]; ok {
		if err := json.Unmarshal(v, &s.CommandsPath); err != nil {
			return err
		}
		delete(raw, keyCommandsPath)
	}
	if v, ok := raw[keyAccessibilityNotice]; ok {
		if err := json.Unmarshal(v, &s.AccessibilityNoticeDismissed); err != nil {
			return err
		}
		delete(raw, keyAccessibilityNotice)
	}
	if len(raw) > 0 {
		s.extra = raw
	}
	return nil
}

// MarshalJSON writes the owned fields plus any passthrough keys.
func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.extra)+3)
	for k, v := range s.extra {
		out[k] = v
	}

	safeMode, err := json.Marshal(s.SafeMode)
	if err != nil {
		return nil, err
	}
	out[keySafeMode] = safeMode

	if s.CommandsPath != nil {
		v, err := json.Marshal(s.CommandsPath)
		if err != nil {
			return nil, err
		}
		out[keyCommandsPath] = v
	}
	if s.AccessibilityNoticeDismissed != nil {
		v, err := json.Marshal(s.AccessibilityNoticeDismissed)
		if err != nil {
			return nil, err
		}
		out[keyAccessibilityNotice] = v
	}
	return json.Marshal(out)
}

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package transcript

import (
	"regexp"
	"strings"

	"github.com/poiesic/memoir/core"
)

// timestampPattern matches the WhatsApp export line prefix
// "dd/mm/yyyy, h:mm pm - ". The meridiem marker is case-insensitive and
// may be preceded by a narrow no-break space (U+202F), which newer
// exports emit instead of a regular space.
var timestampPattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4}, \d{1,2}:\d{2}[\s\x{202F}]?(?i:[ap]m))\s+-\s+`)

// senderSeparator splits the payload into sender and message body.
const senderSeparator = ": "

// systemNoticePrefixes reject exporter-generated notices that carry no
// conversational content.
var systemNoticePrefixes = []string{
	"Messages and calls are end-to-end encrypted",
	"You updated the message timer",
	"You turned off disappearing messages",
	"You turned on disappearing messages",
	"Cards are not supported",
}

// Parse parses one physical line of a WhatsApp chat export.
//
// It returns (message, true) when the line carries a retrievable
// message, and (nil, false) when the line is rejected: no timestamp
// prefix, a system notice, or a payload without a sender separator.
// Rejection is an expected filtering outcome, not an error.
//
// Continuation lines of multi-line messages have no timestamp prefix
// and are therefore dropped; messages are not reassembled across
// physical lines.
func Parse(line string) (*core.Message, bool) {
	loc := timestampPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil, false
	}

	timestamp := line[loc[2]:loc[3]]
	content := line[loc[1]:]

	if isSystemNotice(content) {
		return nil, false
	}

	// A payload without the sender separator is a continuation line
	// with no recoverable sender.
	idx := strings.Index(content, senderSeparator)
	if idx < 0 {
		return nil, false
	}

	sender := content[:idx]
	body := content[idx+len(senderSeparator):]

	return &core.Message{
		Timestamp: strings.TrimSpace(timestamp),
		Sender:    strings.TrimSpace(sender),
		Content:   strings.TrimSpace(body),
	}, true
}

// isSystemNotice reports whether the payload matches one of the fixed
// exporter notice templates.
func isSystemNotice(content string) bool {
	for _, prefix := range systemNoticePrefixes {
		if strings.HasPrefix(content, prefix) {
			return true
		}
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "You deleted this message" {
		return true
	}
	if strings.HasSuffix(trimmed, "is a contact") {
		return true
	}

	return strings.Contains(content, "Media omitted")
}

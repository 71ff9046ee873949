package http

import (
	"encoding/json"

	"github.com/arabchat/arabchat-server/internal/chat"
	"github.com/arabchat/arabchat-server/internal/proto"
)

// inboundToCommand maps a wire event onto a hub command. Unknown event types
// and payloads that do not decode map to nil; the permissive contract is that
// such input is dropped without any response to the client.
func inboundToCommand(client *chat.Client, inbound proto.Inbound) *chat.Command {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil
		}
		return &chat.Command{
			Kind:     chat.CommandJoin,
			Client:   client,
			Username: join.Username,
		}
	case proto.InboundTypeMessage:
		var msg proto.MessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil
		}
		return &chat.Command{
			Kind:   chat.CommandMessage,
			Client: client,
			Text:   msg.Text,
		}
	case proto.InboundTypeTyping:
		// Arbitrary payload, merged into the broadcast. A non-object payload
		// degrades to just the user field.
		var payload map[string]any
		if len(inbound.Data) > 0 {
			_ = json.Unmarshal(inbound.Data, &payload)
		}
		return &chat.Command{
			Kind:    chat.CommandTyping,
			Client:  client,
			Payload: payload,
		}
	default:
		return nil
	}
}

func outboundFromEvent(event *chat.Event) proto.Outbound {
	switch event.Kind {
	case chat.EventHistory:
		messages := make([]proto.ChatMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, wireMessage(msg))
		}
		return proto.Outbound{
			Type: proto.OutboundTypeHistory,
			Data: messages,
		}
	case chat.EventMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeMessage,
			Data: wireMessage(event.Message),
		}
	case chat.EventTyping:
		return proto.Outbound{
			Type: proto.OutboundTypeTyping,
			Data: event.Typing,
		}
	case chat.EventOnline:
		return proto.Outbound{
			Type: proto.OutboundTypeOnline,
			Data: proto.Online{Count: event.Count},
		}
	default:
		return proto.Outbound{}
	}
}

func wireMessage(msg chat.Message) proto.ChatMessage {
	return proto.ChatMessage{
		User: msg.User,
		Text: msg.Text,
		TS:   msg.TS,
	}
}

package messages

import (
	"fmt"

	messagefb "github.com/cbodonnell/torchlight/flatbuffers/message"
	resourcefb "github.com/cbodonnell/torchlight/flatbuffers/resource"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

// minFlatbufferSize is the size of the root offset plus a vtable offset
const minFlatbufferSize = flatbuffers.SizeUOffsetT + flatbuffers.SizeSOffsetT

var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	// EncodeAll and DecodeAll are safe for concurrent use
	encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
	}
	decoder, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0), zstd.WithDecoderMaxMemory(MaxFrameSize*16))
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
	}
}

func SerializeMessage(m *Message) ([]byte, error) {
	b, err := SerializeMessageFlatbuffer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}

	return encoder.EncodeAll(b, make([]byte, 0, len(b))), nil
}

func DeserializeMessage(data []byte) (*Message, error) {
	b, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

func SerializeMessageFlatbuffer(m *Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("message is nil")
	}

	builder := flatbuffers.NewBuilder(len(m.Payload) + 32)

	payload := builder.CreateByteVector(m.Payload)

	messagefb.MessageStart(builder)
	messagefb.MessageAddClientId(builder, m.ClientID)
	messagefb.MessageAddType(builder, byte(m.Type))
	messagefb.MessageAddPayload(builder, payload)
	messageOffset := messagefb.MessageEnd(builder)
	builder.Finish(messageOffset)

	return builder.FinishedBytes(), nil
}

func DeserializeMessageFlatbuffer(b []byte) (message *Message, err error) {
	if len(b) < minFlatbufferSize {
		return nil, fmt.Errorf("buffer too short: %d bytes", len(b))
	}
	defer func() {
		// accessors panic on out of range offsets
		if r := recover(); r != nil {
			message = nil
			err = fmt.Errorf("malformed message: %v", r)
		}
	}()

	messageFlatbuffer := messagefb.GetRootAsMessage(b, 0)
	message = &Message{
		ClientID: messageFlatbuffer.ClientId(),
		Type:     MessageType(messageFlatbuffer.Type()),
	}
	if payload := messageFlatbuffer.PayloadBytes(); len(payload) > 0 {
		message.Payload = append([]byte(nil), payload...)
	}

	return message, nil
}

func SerializeResourceToggle(toggle *ResourceToggle) ([]byte, error) {
	if toggle == nil {
		return nil, fmt.Errorf("resource toggle is nil")
	}

	builder := flatbuffers.NewBuilder(16)
	resourcefb.ResourceToggleStart(builder)
	resourcefb.ResourceToggleAddEntityId(builder, toggle.EntityID)
	builder.Finish(resourcefb.ResourceToggleEnd(builder))

	return builder.FinishedBytes(), nil
}

func DeserializeResourceToggle(b []byte) (toggle *ResourceToggle, err error) {
	if len(b) < minFlatbufferSize {
		return nil, fmt.Errorf("buffer too short: %d bytes", len(b))
	}
	defer func() {
		if r := recover(); r != nil {
			toggle = nil
			err = fmt.Errorf("malformed resource toggle: %v", r)
		}
	}()

	toggleFlatbuffer := resourcefb.GetRootAsResourceToggle(b, 0)
	return &ResourceToggle{
		EntityID: toggleFlatbuffer.EntityId(),
	}, nil
}

package broadcaster

import (
	"encoding/base64"
	"strconv"

	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"rbkv/service"
)

// EncodeEvent renders ev as a protobuf Struct. Key and value are carried
// as base64 so arbitrary bytes survive.
func EncodeEvent(ev service.Event) ([]byte, error) {
	fields := map[string]*structpb.Value{
		"seq":  structpb.NewStringValue(strconv.FormatUint(ev.Seq, 10)),
		"type": structpb.NewStringValue(ev.Type.String()),
		"key":  structpb.NewStringValue(base64.StdEncoding.EncodeToString([]byte(ev.Key))),
	}
	if ev.Value != nil {
		fields["value"] = structpb.NewStringValue(base64.StdEncoding.EncodeToString(ev.Value))
	}
	b, err := proto.Marshal(&structpb.Struct{Fields: fields})
	return b, errors.Wrapf(err, "broadcaster: encode event %d", ev.Seq)
}

// DecodeEvent is the inverse of EncodeEvent.
func DecodeEvent(b []byte) (service.Event, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(b, &s); err != nil {
		return service.Event{}, errors.Wrap(err, "broadcaster: decode event")
	}
	f := s.GetFields()

	seq, err := strconv.ParseUint(f["seq"].GetStringValue(), 10, 64)
	if err != nil {
		return service.Event{}, errors.Wrap(err, "broadcaster: event seq")
	}
	ev := service.Event{Seq: seq}
	switch t := f["type"].GetStringValue(); t {
	case service.EventPut.String():
		ev.Type = service.EventPut
	case service.EventDelete.String():
		ev.Type = service.EventDelete
	default:
		return service.Event{}, errors.Newf("broadcaster: event type %q", t)
	}
	key, err := base64.StdEncoding.DecodeString(f["key"].GetStringValue())
	if err != nil {
		return service.Event{}, errors.Wrap(err, "broadcaster: event key")
	}
	ev.Key = string(key)
	if v, ok := f["value"]; ok {
		if ev.Value, err = base64.StdEncoding.DecodeString(v.GetStringValue()); err != nil {
			return service.Event{}, errors.Wrap(err, "broadcaster: event value")
		}
	}
	return ev, nil
}

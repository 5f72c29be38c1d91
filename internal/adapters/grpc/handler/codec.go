package handler

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func fieldValue(req *structpb.Struct, key string) (*structpb.Value, bool) {
	v, ok := req.GetFields()[key]
	if !ok || v == nil {
		return nil, false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}
	return v, true
}

func invalidField(key string, reason string) error {
	return status.Errorf(codes.InvalidArgument, "%s: %s", key, reason)
}

func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := fieldValue(req, key)
	if !ok {
		return "", nil
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return "", invalidField(key, "must be a string")
	}
	return s.StringValue, nil
}

func optionalString(req *structpb.Struct, key string) (*string, error) {
	if _, ok := fieldValue(req, key); !ok {
		return nil, nil
	}
	s, err := stringField(req, key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// numberField は数値、または数値文字列を受け付けます。
func numberField(req *structpb.Struct, key string) (float64, error) {
	v, ok := fieldValue(req, key)
	if !ok {
		return 0, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return kind.NumberValue, nil
	case *structpb.Value_StringValue:
		n, err := strconv.ParseFloat(strings.TrimSpace(kind.StringValue), 64)
		if err != nil {
			return 0, invalidField(key, "must be a number")
		}
		return n, nil
	default:
		return 0, invalidField(key, "must be a number")
	}
}

func optionalNumber(req *structpb.Struct, key string) (*float64, error) {
	if _, ok := fieldValue(req, key); !ok {
		return nil, nil
	}
	n, err := numberField(req, key)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func intField(req *structpb.Struct, key string) (int, error) {
	n, err := numberField(req, key)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
		return 0, invalidField(key, "must be an integer")
	}
	return int(n), nil
}

// timeField は YYYY-MM-DD または RFC3339 形式の日時を受け付けます。
func timeField(req *structpb.Struct, key string) (*time.Time, error) {
	raw, err := stringField(req, key)
	if err != nil || strings.TrimSpace(raw) == "" {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, invalidField(key, fmt.Sprintf("unsupported date %q", raw))
}

func stringListField(req *structpb.Struct, key string) ([]string, error) {
	v, ok := fieldValue(req, key)
	if !ok {
		return nil, nil
	}
	list, isList := v.GetKind().(*structpb.Value_ListValue)
	if !isList {
		return nil, invalidField(key, "must be a list of strings")
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		s, isString := item.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return nil, invalidField(key, "must be a list of strings")
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

func structField(req *structpb.Struct, key string) (*structpb.Struct, error) {
	v, ok := fieldValue(req, key)
	if !ok {
		return nil, nil
	}
	s, isStruct := v.GetKind().(*structpb.Value_StructValue)
	if !isStruct {
		return nil, invalidField(key, "must be an object")
	}
	return s.StructValue, nil
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func timeValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func optionalTimeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timeValue(*t)
}

func stringsValue(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

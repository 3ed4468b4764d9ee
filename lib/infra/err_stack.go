package infra

import (
	"errors"
	"fmt"
	"io"
	"path"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) fileLine() (string, int) {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFile", 0
	}
	return fn.FileLine(frame.pc())
}

func (frame Frame) name() string {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - equivalent to %s:%d
// %+s - function name and full path separated by \n\t
func (frame Frame) Format(s fmt.State, verb rune) {
	file, line := frame.fileLine()
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, frame.name())
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, file)
		} else {
			_, _ = io.WriteString(s, path.Base(file))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(line))
	case 'n':
		name := frame.name()
		name = name[strings.LastIndex(name, "/")+1:]
		_, _ = io.WriteString(s, name[strings.Index(name, ".")+1:])
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

func (frame Frame) MarshalText() ([]byte, error) {
	name := frame.name()
	if name == "unknownFunc" {
		return []byte("unknownFrame"), nil
	}
	file, line := frame.fileLine()
	return []byte(name + " " + file + ":" + strconv.Itoa(line)), nil
}

func callerFrame(skip int) Frame {
	var pcs [1]uintptr
	if n := runtime.Callers(skip+2, pcs[:]); n < 1 {
		return 0
	}
	return Frame(pcs[0])
}

// ErrorStack keeps all the combined errors and the frames they were
// raised or wrapped at. It is able to be inlined into the zap fields.
type ErrorStack interface {
	error
	zapcore.ObjectMarshaler
	Unwrap() []error
	Frames() []Frame
}

var _ ErrorStack = (*errorStack)(nil)

type errorStack struct {
	err    error
	frames []Frame
}

func (es *errorStack) Error() string {
	return es.err.Error()
}

func (es *errorStack) Unwrap() []error {
	return multierr.Errors(es.err)
}

func (es *errorStack) Frames() []Frame {
	return es.frames
}

func (es *errorStack) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("error", es.err.Error())
	return enc.AddArray("errorStack", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, frame := range es.frames {
			text, _ := frame.MarshalText()
			arr.AppendByteString(text)
		}
		return nil
	}))
}

func NewErrorStack(msg string) error {
	return &errorStack{
		err:    errors.New(msg),
		frames: []Frame{callerFrame(1)},
	}
}

// WrapErrorStack records the caller frame on err.
// A nil err is kept nil and err itself is never modified.
func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	if es, ok := err.(*errorStack); ok {
		return &errorStack{
			err:    es.err,
			frames: append(slices.Clone(es.frames), callerFrame(1)),
		}
	}
	return &errorStack{
		err:    err,
		frames: []Frame{callerFrame(1)},
	}
}

// AppendErrorStack combines errs into es. Nil errors are ignored.
func AppendErrorStack(es error, errs ...error) error {
	var (
		combined error
		frames   []Frame
	)
	for _, err := range append([]error{es}, errs...) {
		if err == nil {
			continue
		}
		var _es *errorStack
		if errors.As(err, &_es) {
			combined = multierr.Append(combined, _es.err)
			frames = append(frames, _es.frames...)
			continue
		}
		combined = multierr.Append(combined, err)
	}
	if combined == nil {
		return nil
	}
	if len(frames) == 0 {
		frames = append(frames, callerFrame(1))
	}
	return &errorStack{
		err:    combined,
		frames: frames,
	}
}

package search

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mamadbah2/Nexus/internal/logger"
	"github.com/mamadbah2/Nexus/internal/notify"
	"github.com/mamadbah2/Nexus/internal/product"
)

var (
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
)

// Recorder abstracts the platform's audio capture (the browser media API in
// the original surface). Stop returns the captured audio and its MIME type.
type Recorder interface {
	Start() error
	Stop() (data []byte, mimeType string, err error)
}

// Transcriber posts a recording to the speech-to-text endpoint.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*product.Transcription, error)
}

// Voice is the dictation control next to the search box: record, post to the
// STT service, emit the recognized text into the search flow.
type Voice struct {
	recorder Recorder
	stt      Transcriber
	notifier notify.Notifier
	language string
	onResult func(string)

	recording  bool
	processing bool
}

func NewVoice(recorder Recorder, stt Transcriber, notifier notify.Notifier, language string, onResult func(string)) *Voice {
	return &Voice{
		recorder: recorder,
		stt:      stt,
		notifier: notifier,
		language: language,
		onResult: onResult,
	}
}

func (v *Voice) StartRecording() error {
	if v.recording {
		return ErrAlreadyRecording
	}

	if err := v.recorder.Start(); err != nil {
		logger.L().Error("failed to access microphone", zap.Error(err))
		v.notifier.Error("Error", "Could not access microphone. Please allow microphone access.")
		return err
	}

	v.recording = true
	return nil
}

// StopRecording ends the capture and sends it for transcription. An empty
// transcription emits nothing; a failed one surfaces a single notification.
func (v *Voice) StopRecording(ctx context.Context) error {
	if !v.recording {
		return ErrNotRecording
	}
	v.recording = false

	data, mimeType, err := v.recorder.Stop()
	if err != nil {
		logger.FromCtx(ctx).Error("failed to finish recording", zap.Error(err))
		v.notifier.Error("Error", "Failed to transcribe audio.")
		return err
	}

	v.processing = true
	defer func() { v.processing = false }()

	resp, err := v.stt.Transcribe(ctx, data, mimeType, v.language)
	if err != nil {
		logger.FromCtx(ctx).Error("transcription failed", zap.Error(err))
		v.notifier.Error("Error", "Failed to transcribe audio.")
		return err
	}

	if resp.Transcription != "" && v.onResult != nil {
		v.onResult(resp.Transcription)
	}
	return nil
}

func (v *Voice) IsRecording() bool {
	return v.recording
}

func (v *Voice) IsProcessing() bool {
	return v.processing
}

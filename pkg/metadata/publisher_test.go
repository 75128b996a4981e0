package metadata

import (
	"context"
	"errors"
	"testing"
)

type recordingUploader struct {
	uri   string
	err   error
	calls int

	payload     []byte
	filename    string
	contentType string
}

func (u *recordingUploader) Upload(_ context.Context, payload []byte, filename, contentType string) (string, error) {
	u.calls++
	u.payload = payload
	u.filename = filename
	u.contentType = contentType
	return u.uri, u.err
}

func (u *recordingUploader) Backend() string { return "recording" }

func TestDescriptorEncode_FieldOrder(t *testing.T) {
	d := Descriptor{Name: "Foo", Symbol: "FOO", Description: "Foo token", Image: "https://example.com/foo.png"}
	got, err := d.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"name":"Foo","symbol":"FOO","description":"Foo token","image":"https://example.com/foo.png"}`
	if string(got) != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}
}

func TestPublisher_Publish(t *testing.T) {
	u := &recordingUploader{uri: "https://cdn.example/abc/"}
	p := NewPublisher(u)

	uri, err := p.Publish(context.Background(), Descriptor{Name: "Foo", Symbol: "FOO"})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if uri != "https://cdn.example/abc/" {
		t.Errorf("uri = %q", uri)
	}
	if u.filename != DescriptorFilename || u.contentType != DescriptorContentType {
		t.Errorf("uploaded as %q (%q)", u.filename, u.contentType)
	}
	if len(u.payload) == 0 {
		t.Error("payload should not be empty")
	}
}

func TestPublisher_Publish_Errors(t *testing.T) {
	boom := errors.New("boom")

	if _, err := NewPublisher(&recordingUploader{err: boom}).Publish(context.Background(), Descriptor{}); !errors.Is(err, boom) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if _, err := NewPublisher(&recordingUploader{}).Publish(context.Background(), Descriptor{}); !errors.Is(err, ErrEmptyURI) {
		t.Fatalf("expected ErrEmptyURI, got %v", err)
	}
}

package props_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/provossen/mqconf/props"
)

func TestFromMap(t *testing.T) {
	src := map[string]string{"nameserver.addr": "mq1:9876"}
	p := props.FromMap(src)

	src["nameserver.addr"] = "changed"
	if got := p.Get("nameserver.addr"); got != "mq1:9876" {
		t.Errorf("Get = %q, want the value copied before the change", got)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MQCONF_NAMESERVER_ADDR", "mq1:9876")
	t.Setenv("MQCONF_CONSUMER_GROUP", "readers")
	t.Setenv("MQTEST_NAMESERVER_ADDR", "wrong")

	p := props.FromEnv("MQCONF_")
	if got := p.Get("nameserver.addr"); got != "mq1:9876" {
		t.Errorf("nameserver.addr = %q, want %q", got, "mq1:9876")
	}
	if got := p.Get("consumer.group"); got != "readers" {
		t.Errorf("consumer.group = %q, want %q", got, "readers")
	}
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.Set("nameserver.addr", "mq1:9876")
	v.Set("consumer.group", "readers")
	v.Set("consumer.messages.orderly", true)

	p := props.FromViper(v)
	if got := p.Get("nameserver.addr"); got != "mq1:9876" {
		t.Errorf("nameserver.addr = %q, want %q", got, "mq1:9876")
	}
	if got := p.Get("consumer.messages.orderly"); got != "true" {
		t.Errorf("consumer.messages.orderly = %q, want %q", got, "true")
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mq.yaml")
	data := []byte("nameserver:\n  addr: mq1:9876\nconsumer:\n  group: readers\n  messages:\n    orderly: true\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := props.FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if got := p.Get("nameserver.addr"); got != "mq1:9876" {
		t.Errorf("nameserver.addr = %q, want %q", got, "mq1:9876")
	}
	if got := p.Get("consumer.group"); got != "readers" {
		t.Errorf("consumer.group = %q, want %q", got, "readers")
	}
	if got := p.Get("consumer.messages.orderly"); got != "true" {
		t.Errorf("consumer.messages.orderly = %q, want %q", got, "true")
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := props.FromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("FromFile succeeded on a missing file")
	}
}

package client

import (
	"reflect"
	"strings"
	"testing"

	"github.com/provossen/mqconf/core"
)

func TestConsumerConfigSubscribe(t *testing.T) {
	var cfg ConsumerConfig

	if err := cfg.Subscribe("orders", "TagA || TagB"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if cfg.Topic != "orders" || cfg.Tags != "TagA || TagB" {
		t.Errorf("subscription = (%q, %q), want (%q, %q)", cfg.Topic, cfg.Tags, "orders", "TagA || TagB")
	}

	filter := cfg.TagFilter()
	if filter == nil {
		t.Fatal("TagFilter() = nil after Subscribe")
	}
	if !filter.Match("TagA") || filter.Match("TagC") {
		t.Errorf("filter matches = %v/%v for TagA/TagC, want true/false",
			filter.Match("TagA"), filter.Match("TagC"))
	}
}

func TestConsumerConfigSubscribe_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		tags  string
	}{
		{"empty topic", "", "*"},
		{"illegal topic", "orders created", "*"},
		{"empty tag expression", "orders", "||"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg ConsumerConfig
			if err := cfg.Subscribe(tt.topic, tt.tags); err == nil {
				t.Fatal("Subscribe succeeded, want error")
			}
			if cfg.Topic != "" || cfg.Tags != "" || cfg.TagFilter() != nil {
				t.Errorf("failed Subscribe left state behind: %+v", cfg)
			}
		})
	}
}

func TestCheckTopic(t *testing.T) {
	tests := []struct {
		topic string
		ok    bool
	}{
		{"orders", true},
		{"orders_2024", true},
		{"ORDERS-v2", true},
		{"%RETRY%readers", true},
		{"", false},
		{"orders created", false},
		{"orders.created", false},
		{"orders/created", false},
		{strings.Repeat("t", 127), true},
		{strings.Repeat("t", 128), false},
	}

	for _, tt := range tests {
		err := CheckTopic(tt.topic)
		if tt.ok && err != nil {
			t.Errorf("CheckTopic(%q): %v, want nil", tt.topic, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("CheckTopic(%q) = nil, want error", tt.topic)
		}
	}
}

func TestClientConfigAddresses(t *testing.T) {
	tests := []struct {
		addr string
		want []string
	}{
		{"ns:9876", []string{"ns:9876"}},
		{"a:9876;b:9876", []string{"a:9876", "b:9876"}},
		{"a:9876,b:9876;c:9876", []string{"a:9876", "b:9876", "c:9876"}},
		{"a:9876;", []string{"a:9876"}},
	}

	for _, tt := range tests {
		cfg := ClientConfig{NameServerAddr: tt.addr}
		if got := cfg.Addresses(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Addresses(%q) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestClientConfigClientID(t *testing.T) {
	tests := []struct {
		ip, name string
		want     string
	}{
		{"10.0.0.5", "7", "10.0.0.5@7"},
		{"", "7", "7"},
		{"10.0.0.5", "", "10.0.0.5"},
		{"", "", ""},
	}

	for _, tt := range tests {
		cfg := ClientConfig{ClientIP: tt.ip, InstanceName: tt.name}
		if got := cfg.ClientID(); got != tt.want {
			t.Errorf("ClientID(%q, %q) = %q, want %q", tt.ip, tt.name, got, tt.want)
		}
	}
}

func TestConsumerConfigRepeatable(t *testing.T) {
	props := core.Properties{
		core.KeyNameServerAddr:      "ns:9876",
		core.KeyConsumerGroup:       "readers",
		core.KeyConsumerTopic:       "orders",
		core.KeyConsumerTag:         "TagA || TagB",
		core.KeyConsumerOffsetReset: "earliest",
	}

	var a, b ConsumerConfig
	if err := core.ConfigureConsumer(props, core.StaticTask(1), &a); err != nil {
		t.Fatalf("ConfigureConsumer: %v", err)
	}
	if err := core.ConfigureConsumer(props, core.StaticTask(1), &b); err != nil {
		t.Fatalf("ConfigureConsumer: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated resolution diverged:\n a = %+v\n b = %+v", a, b)
	}
}

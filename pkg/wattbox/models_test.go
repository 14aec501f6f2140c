package wattbox

import (
	"strings"
	"testing"
)

func TestParseStatusDocument_Full(t *testing.T) {
	doc, err := parseStatusDocument([]byte(mockStatusXML))
	if err != nil {
		t.Fatalf("parseStatusDocument() error = %v", err)
	}

	if doc.HostName == nil || *doc.HostName != "wattbox-av" {
		t.Errorf("HostName = %v, want wattbox-av", doc.HostName)
	}
	if doc.VoltageValue == nil || *doc.VoltageValue != 1200 {
		t.Errorf("VoltageValue = %v, want 1200", doc.VoltageValue)
	}
	if doc.OutletNames == nil || *doc.OutletNames != "Modem,Router,Amplifier" {
		t.Errorf("OutletNames = %v, want Modem,Router,Amplifier", doc.OutletNames)
	}
	if err := doc.requireFull(); err != nil {
		t.Errorf("requireFull() error = %v, want nil", err)
	}
}

func TestParseStatusDocument_ControlResponse(t *testing.T) {
	doc, err := parseStatusDocument([]byte(mockControlXML))
	if err != nil {
		t.Fatalf("parseStatusDocument() error = %v", err)
	}

	if doc.OutletStatus == nil || *doc.OutletStatus != "0,1,0" {
		t.Errorf("OutletStatus = %v, want 0,1,0", doc.OutletStatus)
	}
	if doc.HostName != nil {
		t.Errorf("HostName = %v, want nil for a control response", doc.HostName)
	}
}

func TestRequireFull_NamesMissingFields(t *testing.T) {
	body := strings.Replace(mockStatusXML, "<hasUPS>0</hasUPS>", "", 1)
	body = strings.Replace(body, "<outlet_name>Modem,Router,Amplifier</outlet_name>", "", 1)

	doc, err := parseStatusDocument([]byte(body))
	if err != nil {
		t.Fatalf("parseStatusDocument() error = %v", err)
	}

	err = doc.requireFull()
	if err == nil {
		t.Fatal("requireFull() should fail with fields missing")
	}
	for _, field := range []string{"hasUPS", "outlet_name"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("requireFull() error should name %q, got: %v", field, err)
		}
	}
}

func TestParseOutletStates(t *testing.T) {
	tests := []struct {
		raw  string
		want []bool
	}{
		{"1,0,1", []bool{true, false, true}},
		{"0,0", []bool{false, false}},
		{"1", []bool{true}},
		// The device reports "1" for on; anything else is off
		{"2,on,1", []bool{false, false, true}},
	}

	for _, tt := range tests {
		got := parseOutletStates(tt.raw)
		if len(got) != len(tt.want) {
			t.Errorf("parseOutletStates(%q) len = %d, want %d", tt.raw, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseOutletStates(%q)[%d] = %v, want %v", tt.raw, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTenths(t *testing.T) {
	tests := []struct {
		raw  int
		want float64
	}{
		{1200, 120.0},
		{1205, 120.5},
		{52, 5.2},
		{0, 0},
	}

	for _, tt := range tests {
		raw := tt.raw
		if got := tenths(&raw); got != tt.want {
			t.Errorf("tenths(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if got := tenths(nil); got != 0 {
		t.Errorf("tenths(nil) = %v, want 0", got)
	}
}

func TestFlag(t *testing.T) {
	on := "1"
	off := "0"
	other := "true"

	if !flag(&on) {
		t.Error(`flag("1") = false, want true`)
	}
	if flag(&off) {
		t.Error(`flag("0") = true, want false`)
	}
	if flag(&other) {
		t.Error(`flag("true") = true, want false`)
	}
	if flag(nil) {
		t.Error("flag(nil) = true, want false")
	}
}

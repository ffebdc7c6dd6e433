package pcapout

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

func TestWriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pcap")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	payloads := [][]byte{
		{0xAA, 0xBB, 0xCC},
		bytes.Repeat([]byte{0x42}, 42),
	}
	base := time.Unix(1700000000, 0)
	for i, p := range payloads {
		if err := w.WritePacket(p, base.Add(time.Duration(i)*time.Millisecond)); err != nil {
			t.Fatalf("WritePacket %d failed: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()

	r, err := pcapgo.NewReader(f)
	if err != nil {
		t.Fatalf("pcap reader: %v", err)
	}
	if r.LinkType() != layers.LinkTypeEthernet {
		t.Errorf("link type: got %v, want Ethernet", r.LinkType())
	}

	for i, want := range payloads {
		data, ci, err := r.ReadPacketData()
		if err != nil {
			t.Fatalf("read packet %d: %v", i, err)
		}
		if ci.CaptureLength != len(data) {
			t.Errorf("packet %d: capture length %d != %d", i, ci.CaptureLength, len(data))
		}

		pkt := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)
		udpLayer := pkt.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			t.Fatalf("packet %d: no UDP layer", i)
		}
		udp := udpLayer.(*layers.UDP)
		if udp.DstPort != UDPPort {
			t.Errorf("packet %d: dst port %d, want %d", i, udp.DstPort, UDPPort)
		}
		if !bytes.Equal(udp.Payload, want) {
			t.Errorf("packet %d: payload %x, want %x", i, udp.Payload, want)
		}
	}
}

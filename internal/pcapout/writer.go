// Package pcapout exports simulated packets as a capture file, so runs
// can be replayed through Wireshark or any pcap tooling. Each telemetry
// header travels as the payload of a synthetic Ethernet/IPv4/UDP frame.
package pcapout

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

const (
	// Snaplen for the generated capture; synthetic frames stay small.
	snaplen = 65536

	// UDPPort marks the synthetic telemetry flow in the capture.
	UDPPort = 9555
)

// Writer appends synthetic frames to a pcap file.
type Writer struct {
	f *os.File
	w *pcapgo.Writer

	srcMAC, dstMAC net.HardwareAddr
	srcIP, dstIP   net.IP
}

// NewWriter creates (truncating) the capture file at path.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create pcap file %s: %w", path, err)
	}

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(snaplen, layers.LinkTypeEthernet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write pcap header: %w", err)
	}

	return &Writer{
		f:      f,
		w:      w,
		srcMAC: net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01},
		dstMAC: net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x02},
		srcIP:  net.IPv4(10, 0, 0, 1),
		dstIP:  net.IPv4(10, 0, 0, 2),
	}, nil
}

// WritePacket wraps payload in Ethernet/IPv4/UDP and appends it with the
// given capture timestamp.
func (w *Writer) WritePacket(payload []byte, ts time.Time) error {
	eth := &layers.Ethernet{
		SrcMAC:       w.srcMAC,
		DstMAC:       w.dstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    w.srcIP,
		DstIP:    w.dstIP,
	}
	udp := &layers.UDP{
		SrcPort: UDPPort,
		DstPort: UDPPort,
	}
	if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
		return err
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(payload)); err != nil {
		return fmt.Errorf("failed to serialize frame: %w", err)
	}

	data := buf.Bytes()
	ci := gopacket.CaptureInfo{
		Timestamp:     ts,
		CaptureLength: len(data),
		Length:        len(data),
	}
	return w.w.WritePacket(ci, data)
}

// Close flushes and closes the capture file.
func (w *Writer) Close() error {
	return w.f.Close()
}

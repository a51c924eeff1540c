package types

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/powder-labs/srsprofile/errors"
)

const (
	// rspecNS is the GENI RSpec v3 namespace of the request document.
	rspecNS = "http://www.geni.net/resources/rspec/3"
	// spectrumNS is the extension namespace used for spectrum reservations.
	spectrumNS = "http://www.protogeni.net/resources/rspec/ext/spectrum/1"

	rawPCSliver = "raw-pc"
)

// Request is the root of a resource request. It owns every node, link and
// spectrum reservation accumulated by the profile builders and its sole
// destiny is XML serialization for the portal's provisioning backend.
type Request struct {
	XMLName  xml.Name               `xml:"rspec"`
	Xmlns    string                 `xml:"xmlns,attr"`
	Type     string                 `xml:"type,attr"`
	Nodes    []*Node                `xml:"node"`
	Links    []*Link                `xml:"link"`
	Spectrum []*SpectrumReservation `xml:"spectrum"`

	// node client ids seen so far, to catch colliding selections
	names map[string]struct{}
}

// NewRequest returns an empty request rspec.
func NewRequest() *Request {
	return &Request{
		Xmlns: rspecNS,
		Type:  "request",
		names: make(map[string]struct{}),
	}
}

// Node is a provisionable resource: either a raw-pc compute node or a
// bare radio device identified by its component id.
type Node struct {
	XMLName            xml.Name      `xml:"node"`
	ClientID           string        `xml:"client_id,attr"`
	ComponentID        string        `xml:"component_id,attr,omitempty"`
	ComponentManagerID string        `xml:"component_manager_id,attr,omitempty"`
	Exclusive          bool          `xml:"exclusive,attr"`
	SliverType         *SliverType   `xml:"sliver_type,omitempty"`
	HardwareType       *HardwareType `xml:"hardware_type,omitempty"`
	Services           *Services     `xml:"services,omitempty"`
	Interfaces         []*Interface  `xml:"interface"`
}

type SliverType struct {
	Name      string     `xml:"name,attr"`
	DiskImage *DiskImage `xml:"disk_image,omitempty"`
}

type DiskImage struct {
	Name string `xml:"name,attr"`
}

type HardwareType struct {
	Name string `xml:"name,attr"`
}

// Services holds the ordered boot-time actions of a node. Order is
// significant: deployment steps rely on the networking and tuning steps
// that precede them.
type Services struct {
	Execute []*Execute `xml:"execute"`
}

type Execute struct {
	Shell   string `xml:"shell,attr"`
	Command string `xml:"command,attr"`
}

type Interface struct {
	ClientID string `xml:"client_id,attr"`
	IP       *IPv4  `xml:"ip,omitempty"`
}

type IPv4 struct {
	Address string `xml:"address,attr"`
	Netmask string `xml:"netmask,attr"`
	Type    string `xml:"type,attr"`
}

// Link is a named point-to-point link with exactly two endpoints.
type Link struct {
	XMLName       xml.Name        `xml:"link"`
	ClientID      string          `xml:"client_id,attr"`
	InterfaceRefs []*InterfaceRef `xml:"interface_ref"`
	Properties    []*LinkProperty `xml:"property"`

	// capacity in kb/s, expanded into per-direction properties at
	// serialization time
	CapacityKbps int64 `xml:"-"`
}

type InterfaceRef struct {
	ClientID string `xml:"client_id,attr"`
}

type LinkProperty struct {
	SourceID string `xml:"source_id,attr"`
	DestID   string `xml:"dest_id,attr"`
	Capacity int64  `xml:"capacity,attr,omitempty"`
}

// SpectrumReservation asks the spectrum authority for exclusive use of
// [FreqLow, FreqHigh] MHz. Grant or denial is the authority's business.
type SpectrumReservation struct {
	XMLName  xml.Name `xml:"spectrum"`
	Xmlns    string   `xml:"xmlns,attr"`
	FreqLow  float64  `xml:"frequency_low,attr"`
	FreqHigh float64  `xml:"frequency_high,attr"`
	Priority int      `xml:"priority,attr"`
}

// NewRawPC returns an exclusive raw-pc node with the given client id.
func NewRawPC(name string) *Node {
	return &Node{
		ClientID:   name,
		Exclusive:  true,
		SliverType: &SliverType{Name: rawPCSliver},
	}
}

// SetDiskImage sets the disk image the node boots from. The image is an
// opaque identifier resolved by the backend.
func (n *Node) SetDiskImage(urn string) {
	if n.SliverType == nil {
		n.SliverType = &SliverType{Name: rawPCSliver}
	}
	n.SliverType.DiskImage = &DiskImage{Name: urn}
}

// SetHardwareType pins the node to a hardware type, e.g. d740.
func (n *Node) SetHardwareType(hw string) {
	n.HardwareType = &HardwareType{Name: hw}
}

// AddService appends a boot-time execute service. Services run in the
// order they were added.
func (n *Node) AddService(shell, command string) {
	if n.Services == nil {
		n.Services = &Services{}
	}
	n.Services.Execute = append(n.Services.Execute, &Execute{Shell: shell, Command: command})
}

// AddInterface adds a named interface to the node. The interface client id
// is namespaced by the node's client id.
func (n *Node) AddInterface(name string) *Interface {
	ifc := &Interface{ClientID: fmt.Sprintf("%s:%s", n.ClientID, name)}
	n.Interfaces = append(n.Interfaces, ifc)
	return ifc
}

// SetIPv4 assigns a static address to the interface.
func (i *Interface) SetIPv4(address, netmask string) {
	i.IP = &IPv4{Address: address, Netmask: netmask, Type: "ipv4"}
}

// AddNode appends a node to the request. Node client ids must be unique
// within the request; a collision aborts request construction.
func (r *Request) AddNode(n *Node) error {
	if r.names == nil {
		r.names = make(map[string]struct{})
	}
	if _, ok := r.names[n.ClientID]; ok {
		return fmt.Errorf("%w: %q", errors.ErrDuplicateNodeName, n.ClientID)
	}
	r.names[n.ClientID] = struct{}{}
	r.Nodes = append(r.Nodes, n)
	return nil
}

// NewLink creates a link, adds it to the request and returns it for
// endpoint attachment.
func (r *Request) NewLink(name string) *Link {
	l := &Link{ClientID: name}
	r.Links = append(r.Links, l)
	return l
}

// AddSpectrum attaches a spectrum reservation to the request.
func (r *Request) AddSpectrum(freqLow, freqHigh float64, priority int) {
	r.Spectrum = append(r.Spectrum, &SpectrumReservation{
		Xmlns:    spectrumNS,
		FreqLow:  freqLow,
		FreqHigh: freqHigh,
		Priority: priority,
	})
}

// AddInterfaceRef attaches an interface endpoint to the link.
func (l *Link) AddInterfaceRef(i *Interface) {
	l.InterfaceRefs = append(l.InterfaceRefs, &InterfaceRef{ClientID: i.ClientID})
}

// materializeProperties expands the link capacity into the two
// per-direction property elements the rspec format expects. Explicitly
// set properties win.
func (l *Link) materializeProperties() {
	if len(l.Properties) > 0 || l.CapacityKbps == 0 || len(l.InterfaceRefs) != 2 {
		return
	}
	a, b := l.InterfaceRefs[0].ClientID, l.InterfaceRefs[1].ClientID
	l.Properties = []*LinkProperty{
		{SourceID: a, DestID: b, Capacity: l.CapacityKbps},
		{SourceID: b, DestID: a, Capacity: l.CapacityKbps},
	}
}

// WriteXML serializes the request to w. Output is deterministic: elements
// appear in insertion order.
func (r *Request) WriteXML(w io.Writer) error {
	for _, l := range r.Links {
		l.materializeProperties()
	}

	b, err := xml.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize request rspec: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", xml.Header, b); err != nil {
		return fmt.Errorf("failed to write request rspec: %w", err)
	}
	return nil
}

// XML returns the serialized request as a string.
func (r *Request) XML() (string, error) {
	buf := new(bytes.Buffer)
	if err := r.WriteXML(buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

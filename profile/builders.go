package profile

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/powder-labs/srsprofile/types"
)

const (
	binPath = "/local/repository/bin"

	emulabManagerID = "urn:publicid:IDN+emulab.net+authority+cm"

	ubuntuImage = "urn:publicid:IDN+emulab.net+image+emulab-ops:UBUNTU18-64-STD"
	srsLTEImage = "urn:publicid:IDN+emulab.net+image+PowderTeam:U18LL-SRSLTE"

	defaultSrsranHash = "release_22_04"

	// The compute node talks to its X310 over a dedicated point-to-point
	// control link. 10 Mb/s is plenty: the RF path does not cross it.
	radioLinkKbps = 10 * 1000

	// Every compute/X310 pair reuses the same address. This is safe only
	// because each pair sits on its own isolated link; nothing routes
	// between pairs.
	radioIfAddr = "192.168.40.1"
	radioIfMask = "255.255.255.0"
)

// diskImage returns the disk image compute nodes of the variant boot.
func (v Variant) diskImage() string {
	if v == VariantOTALab {
		return srsLTEImage
	}
	return ubuntuImage
}

// radioSuffix returns the client id suffix of the bare radio device.
func (v Variant) radioSuffix() string {
	if v == VariantOTALab {
		return "-radio"
	}
	return "-x310"
}

// x310ComputeServices returns the ordered boot actions of an X310's
// compute node. Order matters: deployment depends on the networking and
// tuning steps before it.
func (p *Profile) x310ComputeServices() []string {
	if p.Variant == VariantOTALab {
		return []string{
			binPath + "/add-nat-and-ip-forwarding.sh",
			binPath + "/tune-cpu.sh",
			binPath + "/tune-sdr-iface.sh",
			fmt.Sprintf("%s/deploy-srs.sh %s", binPath, defaultSrsranHash),
		}
	}
	return []string{
		binPath + "/add-nat-and-ip-forwarding.sh",
		binPath + "/update-config-files.sh",
		binPath + "/tune-cpu.sh",
		binPath + "/tune-sdr-iface.sh",
		p.setupCommand(),
	}
}

// b210Services returns the ordered boot actions of a fixed-endpoint
// node. No SDR interface tuning here: the B210 hangs directly off the
// NUC, there is no dedicated network path to tune.
func (p *Profile) b210Services() []string {
	if p.Variant == VariantOTALab {
		return []string{
			binPath + "/update-config-files.sh",
			binPath + "/tune-cpu.sh",
			fmt.Sprintf("%s/deploy-srs.sh %s", binPath, defaultSrsranHash),
		}
	}
	return []string{
		binPath + "/update-config-files.sh",
		binPath + "/tune-cpu.sh",
		p.setupCommand(),
	}
}

func (p *Profile) setupCommand() string {
	return fmt.Sprintf("%s/setup.sh %s %s %s",
		binPath,
		p.Params.String(paramToken),
		p.Params.String(paramUser),
		p.Params.String(paramPassword))
}

// x310NodePair appends one base-station unit to the request: a compute
// node, the X310 radio device and the point-to-point control link
// between them.
func (p *Profile) x310NodePair(req *types.Request, idx int, radio types.RadioEntry) error {
	link := req.NewLink(fmt.Sprintf("radio-link-%d", idx))
	link.CapacityKbps = radioLinkKbps

	node := types.NewRawPC(radio.RadioName + "-comp")
	node.SetHardwareType(p.Params.String(paramNodeType))
	node.SetDiskImage(p.Variant.diskImage())
	node.ComponentManagerID = emulabManagerID
	for _, cmd := range p.x310ComputeServices() {
		node.AddService("bash", cmd)
	}

	nodeRadioIf := node.AddInterface("usrp_if")
	nodeRadioIf.SetIPv4(radioIfAddr, radioIfMask)
	link.AddInterfaceRef(nodeRadioIf)

	if err := req.AddNode(node); err != nil {
		return err
	}

	rdev := types.NewRawPC(radio.RadioName + p.Variant.radioSuffix())
	rdev.ComponentID = radio.RadioName
	rdev.ComponentManagerID = emulabManagerID
	link.AddInterfaceRef(rdev.AddInterface("rf0"))

	if err := req.AddNode(rdev); err != nil {
		return err
	}

	log.Debugf("added %s pair %d: %s via %s (%s)",
		radio.RadioName, idx, node.ClientID, link.ClientID,
		humanize.SI(float64(radioLinkKbps)*1000, "b/s"))

	return nil
}

// b210NucPair appends one fixed-endpoint node to the request. The B210
// is attached directly to the NUC, so there is no radio device node, no
// link and no static address.
func (p *Profile) b210NucPair(req *types.Request, idx int, ep types.EndpointEntry) error {
	var node *types.Node

	switch p.Variant {
	case VariantOTALab:
		node = types.NewRawPC(ep.NodeID + "-b210")
		node.ComponentID = ep.NodeID
	default:
		node = types.NewRawPC(fmt.Sprintf("b210-%s-nuc2", ep.AggregateID))
		node.ComponentID = "nuc2"
		node.ComponentManagerID = fmt.Sprintf(
			"urn:publicid:IDN+%s.powderwireless.net+authority+cm", ep.AggregateID)
	}

	node.SetDiskImage(p.Variant.diskImage())
	for _, cmd := range p.b210Services() {
		node.AddService("bash", cmd)
	}

	if err := req.AddNode(node); err != nil {
		return err
	}

	log.Debugf("added fixed endpoint %d: %s", idx, node.ClientID)

	return nil
}

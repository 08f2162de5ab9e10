package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/trebuchet-org/opsgov/internal/domain/models"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// QueryRenderer renders registry reads
type QueryRenderer struct {
	out io.Writer
}

// NewQueryRenderer creates a new query renderer
func NewQueryRenderer(out io.Writer) *QueryRenderer {
	return &QueryRenderer{out: out}
}

func (r *QueryRenderer) field(label string, value any) {
	fmt.Fprintf(r.out, "%s %v\n", labelStyle.Sprintf("%-14s", label+":"), value)
}

// RenderClient renders a client lookup
func (r *QueryRenderer) RenderClient(info *usecase.ClientInfo) error {
	if !info.Registered() {
		if info.Name.IsZero() {
			fmt.Fprintln(r.out, "No client")
			return nil
		}
		fmt.Fprintf(r.out, "Client %s is not registered\n", info.Name)
		if len(info.Suggestions) > 0 {
			fmt.Fprintf(r.out, "Did you mean: %s?\n", strings.Join(info.Suggestions, ", "))
		}
		return nil
	}
	r.field("client", info.Name)
	r.field("owner", formatAddress(info.Owner))
	r.field("required", formatYesNo(info.Required))
	return nil
}

// RenderRelease renders a release lookup
func (r *QueryRenderer) RenderRelease(info *usecase.ReleaseInfo) error {
	r.field("client", info.Client)
	r.field("release", formatHash(info.ID))
	r.renderRelease(info.Release)
	r.field("latest", formatYesNo(info.IsLatest))
	if !info.IsLatest {
		r.field("newest", formatHash(info.LatestInTrack))
	}
	return nil
}

func (r *QueryRenderer) renderRelease(rel models.Release) {
	r.field("track", trackStyle.Sprint(rel.Track.String()))
	r.field("version", rel.Semver)
	r.field("fork block", rel.ForkBlock)
	critical := "no"
	if rel.Critical {
		critical = failStyle.Sprint("yes")
	}
	r.field("critical", critical)
}

// RenderChecksum renders a checksum lookup
func (r *QueryRenderer) RenderChecksum(info *usecase.ChecksumInfo) error {
	r.field("client", info.Client)
	r.field("release", formatHash(info.Release))
	r.field("platform", formatHash(info.Platform))
	r.field("checksum", formatHash(info.Checksum))
	return nil
}

// RenderBuild renders a reverse checksum lookup
func (r *QueryRenderer) RenderBuild(info *usecase.BuildInfo) error {
	r.field("client", info.Client)
	r.field("checksum", formatHash(info.Checksum))
	r.field("release", formatHash(info.Build.Release))
	r.field("platform", formatHash(info.Build.Platform))
	return nil
}

// RenderLatest renders the newest release of a track
func (r *QueryRenderer) RenderLatest(info *usecase.LatestInfo) error {
	r.field("client", info.Client)
	r.field("release", formatHash(info.ID))
	r.renderRelease(info.Release)
	return nil
}

// RenderStatus renders the deployment summary
func (r *QueryRenderer) RenderStatus(status *usecase.RegistryStatus) error {
	fmt.Fprintln(r.out, headerStyle.Sprint("Registry"))
	r.field("address", formatAddress(status.Deployment.Registry))
	r.field("owner", formatAddress(status.GrandOwner))
	r.field("latest fork", status.LatestFork)
	r.field("block", status.BlockNumber)

	if !status.Deployment.HasProxy() {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, labelStyle.Sprint("No governance proxy"))
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, headerStyle.Sprint("Governance proxy"))
	r.field("address", formatAddress(status.Deployment.Proxy))
	r.field("owner", formatAddress(status.ProxyOwner))
	client := labelStyle.Sprint("-")
	if !status.ProxyClient.IsZero() {
		client = status.ProxyClient.String()
	}
	r.field("client", client)
	if status.GrandOwner == status.Deployment.Proxy {
		fmt.Fprintln(r.out, pendingStyle.Sprint("The proxy owns the registry; administration is relayed"))
	}
	fmt.Fprintln(r.out)
	return NewTracksRenderer(r.out).Render(status.Tracks)
}

package enrich

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// ASNDB is an OrgLookup backed by a local GeoLite2-ASN database. It serves
// as the organization source when no remote token is configured: no network
// call, no rate limit, but also no country field (the ASN database does not
// carry one).
type ASNDB struct {
	reader *geoip2.Reader
}

// OpenASNDB opens a .mmdb ASN database from disk.
func OpenASNDB(path string) (*ASNDB, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asn database: %w", err)
	}
	return &ASNDB{reader: reader}, nil
}

// Close releases the underlying database handle.
func (d *ASNDB) Close() error {
	return d.reader.Close()
}

func (d *ASNDB) Lookup(_ context.Context, ip string) (*OrgResult, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("asndb: invalid ip %q", ip)
	}

	record, err := d.reader.ASN(parsed)
	if err != nil {
		return nil, err
	}
	if record.AutonomousSystemOrganization == "" {
		return nil, fmt.Errorf("asndb: no organization for %s", ip)
	}

	return &OrgResult{
		IP:  ip,
		Org: fmt.Sprintf("AS%d %s", record.AutonomousSystemNumber, record.AutonomousSystemOrganization),
	}, nil
}

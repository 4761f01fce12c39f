package graph

import "fmt"

// NodeDetails carries the fields specific to one node type.
// Exactly one implementation exists per NodeType.
type NodeDetails interface {
	Kind() NodeType
}

type BillDetails struct {
	Status    string `json:"status,omitempty"`
	Sponsor   string `json:"sponsor,omitempty"`
	Committee string `json:"committee,omitempty"`
}

type LegislatorDetails struct {
	Party     string `json:"party,omitempty"`
	District  string `json:"district,omitempty"`
	Chamber   string `json:"chamber,omitempty"`
	Committee string `json:"committee,omitempty"`
}

type ClientDetails struct {
	Tier     string `json:"tier,omitempty"`
	Industry string `json:"industry,omitempty"`
}

type CommitteeDetails struct {
	Chamber string `json:"chamber,omitempty"`
	Chair   string `json:"chair,omitempty"`
}

type IssueDetails struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

type StakeholderDetails struct {
	Organization string `json:"organization,omitempty"`
	Title        string `json:"title,omitempty"`
}

type StaffDetails struct {
	Title        string `json:"title,omitempty"`
	Organization string `json:"organization,omitempty"`
}

func (BillDetails) Kind() NodeType        { return NodeBill }
func (LegislatorDetails) Kind() NodeType  { return NodeLegislator }
func (ClientDetails) Kind() NodeType      { return NodeClient }
func (CommitteeDetails) Kind() NodeType   { return NodeCommittee }
func (IssueDetails) Kind() NodeType       { return NodeIssue }
func (StakeholderDetails) Kind() NodeType { return NodeStakeholder }
func (StaffDetails) Kind() NodeType       { return NodeStaff }

// DetailsFromMetadata converts an open key/value bag into the variant for t.
// Keys the variant does not use are ignored.
func DetailsFromMetadata(t NodeType, md map[string]string) (NodeDetails, error) {
	get := func(key string) string { return md[key] }
	switch t {
	case NodeBill:
		return BillDetails{Status: get("status"), Sponsor: get("sponsor"), Committee: get("committee")}, nil
	case NodeLegislator:
		return LegislatorDetails{Party: get("party"), District: get("district"), Chamber: get("chamber"), Committee: get("committee")}, nil
	case NodeClient:
		return ClientDetails{Tier: get("tier"), Industry: get("industry")}, nil
	case NodeCommittee:
		return CommitteeDetails{Chamber: get("chamber"), Chair: get("chair")}, nil
	case NodeIssue:
		return IssueDetails{Status: get("status"), Priority: get("priority")}, nil
	case NodeStakeholder:
		return StakeholderDetails{Organization: get("organization"), Title: get("title")}, nil
	case NodeStaff:
		office := get("organization")
		if office == "" {
			office = get("office")
		}
		return StaffDetails{Title: get("title"), Organization: office}, nil
	default:
		return nil, &InvalidArgumentError{Name: "type", Reason: fmt.Sprintf("unknown node type %q", t)}
	}
}

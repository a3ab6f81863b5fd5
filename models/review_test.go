package models

import "testing"

func TestDecisionDrivesProposalStatus(t *testing.T) {
	cases := []struct {
		decision Decision
		want     ProposalStatus
		known    bool
	}{
		{DecisionApproved, ProposalApproved, true},
		{DecisionRejected, ProposalRejected, true},
		{DecisionRevisionsRequested, ProposalNeedsRevision, true},
		{Decision("Maybe"), "", false},
		{Decision(""), "", false},
	}

	for _, tc := range cases {
		got, ok := tc.decision.ProposalStatus()
		if ok != tc.known || got != tc.want {
			t.Errorf("%q: got (%q, %v) want (%q, %v)", tc.decision, got, ok, tc.want, tc.known)
		}
	}
}

func TestProposalStatusPending(t *testing.T) {
	pending := []ProposalStatus{ProposalDraft, ProposalUnderReview, ProposalNeedsRevision}
	for _, s := range pending {
		if !s.Pending() {
			t.Errorf("%q should be pending", s)
		}
	}

	final := []ProposalStatus{ProposalApproved, ProposalRejected, ProposalStatus("Unknown")}
	for _, s := range final {
		if s.Pending() {
			t.Errorf("%q should not be pending", s)
		}
	}
}

package membership

import (
	"fmt"
	"time"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
)

// PromotionCommand carries the identity the promoted member takes as the new
// main member.
type PromotionCommand struct {
	MemberID   uint
	Identity   Identity
	Type       vo.MemberType
	Relation   vo.Relation
	DateJoined time.Time
}

// PromotionState is the current state of the original policy.
type PromotionState struct {
	Applicant       *Applicant
	MainMembers     []*MainMember
	ExtendedMembers []*ExtendedMember
	Plan            *plan.Plan
}

// Promotion is the new state produced by Promote.
//
// Persist it in one transaction: update Original and FormerMainMember, create
// Successor, call BindSuccessor, then create NewMainMember and update Promoted
// and Reparented. Run Effects after commit.
type Promotion struct {
	Original         *Applicant
	FormerMainMember *MainMember
	Successor        *Applicant
	NewMainMember    *MainMember
	Promoted         *ExtendedMember
	Reparented       []*ExtendedMember
	Effects          []Effect
}

// Promote turns an extended member into the main member of a successor
// policy. The original main member is marked deceased, the original applicant
// archived, the promoted member deleted and every other active extended
// member moved to the successor.
func Promote(state PromotionState, cmd PromotionCommand, now time.Time, loc *time.Location) (*Promotion, error) {
	if state.Applicant == nil || state.Plan == nil {
		return nil, fmt.Errorf("promotion requires applicant and plan")
	}
	if !state.Applicant.IsActive() {
		return nil, fmt.Errorf("%w: applicant %d is %s", ErrApplicantNotActive, state.Applicant.id, state.Applicant.state)
	}
	if cmd.Type != vo.MemberTypeMain {
		return nil, fmt.Errorf("%w: promoted member must become %s, got %s", ErrInvalidMemberType, vo.MemberTypeMain, cmd.Type)
	}
	if !vo.ValidRelations[cmd.Relation] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRelation, cmd.Relation)
	}

	former, err := soleActiveMainMember(state.MainMembers)
	if err != nil {
		return nil, err
	}

	var promoted *ExtendedMember
	others := make([]*ExtendedMember, 0, len(state.ExtendedMembers))
	for _, m := range state.ExtendedMembers {
		if !m.IsActive() || m.applicantID != state.Applicant.id {
			continue
		}
		if m.id == cmd.MemberID {
			promoted = m
			continue
		}
		others = append(others, m)
	}
	if promoted == nil {
		return nil, fmt.Errorf("%w: member %d under applicant %d", ErrExtendedMemberNotFound, cmd.MemberID, state.Applicant.id)
	}

	identity, err := cmd.Identity.Normalize()
	if err != nil {
		return nil, err
	}
	dateJoined := cmd.DateJoined
	if dateJoined.IsZero() {
		dateJoined = promoted.dateJoined
	}

	nowUTC := now.UTC()
	newMain := &MainMember{
		parlourID:  state.Applicant.parlourID,
		identity:   identity,
		dateJoined: dateJoined,
		state:      lifecycle.StateActive,
		version:    1,
		createdAt:  nowUTC,
		updatedAt:  nowUTC,
	}
	if _, err := EvaluateMainMember(newMain, state.Plan, now, loc); err != nil {
		return nil, err
	}

	if err := former.MarkDeceased(); err != nil {
		return nil, err
	}
	if err := promoted.Delete(); err != nil {
		return nil, err
	}
	successor := state.Applicant.successor()
	if err := state.Applicant.Archive(); err != nil {
		return nil, err
	}

	return &Promotion{
		Original:         state.Applicant,
		FormerMainMember: former,
		Successor:        successor,
		NewMainMember:    newMain,
		Promoted:         promoted,
		Reparented:       others,
		Effects: []Effect{
			RegenerateCertificate{Applicant: successor},
		},
	}, nil
}

// BindSuccessor points the new main member and the re-parented members at
// the persisted successor and queues the promotion event.
func (p *Promotion) BindSuccessor(now time.Time) error {
	id := p.Successor.ID()
	if id == 0 {
		return fmt.Errorf("successor applicant has not been persisted")
	}
	p.NewMainMember.applicantID = id
	for _, m := range p.Reparented {
		m.reparent(id)
	}
	p.Effects = append(p.Effects, PublishEvent{Event: &MemberPromotedEvent{
		BaseEvent:            events.NewBaseEvent(EventMemberPromoted, p.Successor.uuid, now),
		OriginalApplicantID:  p.Original.id,
		SuccessorApplicantID: id,
		ParlourID:            p.Successor.parlourID,
		PolicyNum:            p.Successor.policyNum,
		NewMainMemberName:    p.NewMainMember.identity.FullName(),
	}})
	return nil
}

func soleActiveMainMember(members []*MainMember) (*MainMember, error) {
	var found *MainMember
	for _, m := range members {
		if !m.IsActive() {
			continue
		}
		if found != nil {
			return nil, ErrMultipleMainMembers
		}
		found = m
	}
	if found == nil {
		return nil, ErrNoMainMember
	}
	return found, nil
}

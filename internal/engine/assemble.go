package engine

import (
	"sort"
	"strings"

	"github.com/maxbolgarin/shiplog/internal/model"
)

// Assemble groups the reduced and resolved commit list into the changelog
// object consumed by rendering: commit partitions, the deduplicated
// ticket list sorted by issue type, the approved/pending split and the
// pending tickets grouped per reporter.
func (e *Engine) Assemble(commits []*model.Commit) *model.Changelog {
	changelog := &model.Changelog{}
	changelog.Commits.All = commits

	seen := make(map[string]*model.Ticket, len(commits))
	var tickets []*model.Ticket

	for _, c := range commits {
		if len(c.Tickets) > 0 {
			changelog.Commits.Tickets = append(changelog.Commits.Tickets, c)
		} else {
			changelog.Commits.NoTickets = append(changelog.Commits.NoTickets, c)
		}
		if c.Reverted != "" || c.RevertedBy != "" {
			changelog.Commits.Reverted = append(changelog.Commits.Reverted, c)
		}

		// Dedup by key, first-seen record wins, but its commit list
		// accumulates every commit that referenced the ticket.
		for _, t := range c.Tickets {
			ticket, ok := seen[t.Key]
			if !ok {
				ticket = t
				ticket.Commits = nil
				seen[t.Key] = ticket
				tickets = append(tickets, ticket)
			}
			ticket.Commits = append(ticket.Commits, c)
		}
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].Type < tickets[j].Type
	})

	e.MarkTicketReverts(tickets)

	changelog.Tickets.All = tickets
	for _, t := range tickets {
		if t.Reverted != "" {
			changelog.Tickets.Reverted = append(changelog.Tickets.Reverted, t)
		}
		if e.isApproved(t.Status) {
			changelog.Tickets.Approved = append(changelog.Tickets.Approved, t)
		} else {
			changelog.Tickets.Pending = append(changelog.Tickets.Pending, t)
		}
	}

	changelog.Tickets.PendingByOwner = groupByReporter(changelog.Tickets.Pending)

	return changelog
}

// FilterTicketTypes applies the issue type include and exclude lists to
// each commit's ticket list. A non-empty include list wins, otherwise
// the exclude list applies, with neither set everything passes.
func (e *Engine) FilterTicketTypes(commits []*model.Commit) {
	if len(e.cfg.IncludeTypes) == 0 && len(e.cfg.ExcludeTypes) == 0 {
		return
	}
	for _, c := range commits {
		var kept []*model.Ticket
		for _, t := range c.Tickets {
			if e.isTypeAllowed(t.Type) {
				kept = append(kept, t)
			}
		}
		c.Tickets = kept
	}
}

func (e *Engine) isTypeAllowed(issueType string) bool {
	if len(e.cfg.IncludeTypes) > 0 {
		return containsFold(e.cfg.IncludeTypes, issueType)
	}
	return !containsFold(e.cfg.ExcludeTypes, issueType)
}

func (e *Engine) isApproved(status string) bool {
	return containsFold(e.cfg.ApprovalStatuses, status)
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

func groupByReporter(tickets []*model.Ticket) []*model.Reporter {
	byEmail := make(map[string]*model.Reporter)
	var owners []*model.Reporter

	for _, t := range tickets {
		owner, ok := byEmail[t.Reporter.Email]
		if !ok {
			owner = &model.Reporter{
				Email:     t.Reporter.Email,
				Name:      t.Reporter.Name,
				SlackUser: t.SlackUser,
			}
			byEmail[t.Reporter.Email] = owner
			owners = append(owners, owner)
		}
		owner.Tickets = append(owner.Tickets, t)
	}

	sort.Slice(owners, func(i, j int) bool {
		return owners[i].Name < owners[j].Name
	})

	return owners
}

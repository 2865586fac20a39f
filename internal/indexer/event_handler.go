package indexer

import (
	"context"
	"fmt"
	"sync"

	"github.com/goran-ethernal/CertIndexor/internal/changeset"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/internal/metrics"
	"github.com/goran-ethernal/CertIndexor/internal/processor"
	"github.com/goran-ethernal/CertIndexor/pkg/ledger"
	"github.com/goran-ethernal/CertIndexor/pkg/store"
	"golang.org/x/sync/errgroup"
)

// EventHandler turns a single process-ran event into changes on top of the running change set.
type EventHandler struct {
	ledger     ledger.Client
	store      store.Reader
	processors processor.Processors
	log        *logger.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(
	client ledger.Client,
	reader store.Reader,
	processors processor.Processors,
	log *logger.Logger,
) *EventHandler {
	return &EventHandler{
		ledger:     client,
		store:      reader,
		processors: processors,
		log:        log,
	}
}

// HandleEvent resolves the event inputs against current and the store, fetches its output
// tokens, runs the matching processor and returns current merged with the result.
// current is not modified.
func (h *EventHandler) HandleEvent(
	ctx context.Context,
	event ledger.ProcessRanEvent,
	current changeset.ChangeSet,
) (changeset.ChangeSet, error) {
	name, ok := processor.ValidateProcessName(event.Process.ID)
	process, registered := h.processors[name]
	if !ok || !registered {
		return current, &UnknownProcessError{Process: event.Process.ID, CallHash: event.CallHash}
	}

	tx, err := h.store.FindTransactionByHash(ctx, event.CallHash)
	if err != nil {
		return current, fmt.Errorf("failed to look up transaction %s: %w", event.CallHash.Hex(), err)
	}

	inputs, err := h.resolveInputs(ctx, event, current)
	if err != nil {
		return current, err
	}

	outputs, err := h.fetchOutputs(ctx, event)
	if err != nil {
		return current, err
	}

	attachments, err := h.resolveAttachments(ctx, outputs, current)
	if err != nil {
		return current, err
	}

	delta, err := process(processor.Args{
		Version:     event.Process.Version,
		BlockTime:   event.BlockTime,
		Transaction: tx,
		Sender:      event.Sender,
		Inputs:      inputs,
		Outputs:     outputs,
		Attachments: attachments,
	})
	if err != nil {
		return current, fmt.Errorf("call %s: %w", event.CallHash.Hex(), err)
	}

	h.log.Debugw("processed event",
		"process", name,
		"call_hash", event.CallHash.Hex(),
		"local", tx != nil,
		"inputs", len(inputs),
		"outputs", len(outputs),
	)
	metrics.EventsProcessedInc(string(name))

	return changeset.Merge(current, delta), nil
}

// resolveInputs maps each input token to its certificate. Changes made earlier in the same
// block take precedence over the store.
func (h *EventHandler) resolveInputs(
	ctx context.Context,
	event ledger.ProcessRanEvent,
	current changeset.ChangeSet,
) ([]processor.Input, error) {
	inputs := make([]processor.Input, len(event.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, tokenID := range event.Inputs {
		if localID, ok := changeset.FindLocalID(current, tokenID); ok {
			inputs[i] = processor.Input{ID: tokenID, LocalID: localID}
			continue
		}

		g.Go(func() error {
			localID, found, err := h.store.FindCertificateIDByLatestTokenID(gctx, tokenID)
			if err != nil {
				return fmt.Errorf("failed to resolve input token %d: %w", tokenID, err)
			}
			if !found {
				return &UnresolvedTokenError{TokenID: tokenID, CallHash: event.CallHash}
			}

			inputs[i] = processor.Input{ID: tokenID, LocalID: localID}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return inputs, nil
}

// fetchOutputs loads the output tokens as of the event's block, preserving their order.
func (h *EventHandler) fetchOutputs(ctx context.Context, event ledger.ProcessRanEvent) ([]ledger.Token, error) {
	outputs := make([]ledger.Token, len(event.Outputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, tokenID := range event.Outputs {
		g.Go(func() error {
			token, err := h.ledger.GetToken(gctx, tokenID, event.BlockHash)
			if err != nil {
				return fmt.Errorf("failed to fetch output token %d: %w", tokenID, err)
			}

			outputs[i] = *token
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outputs, nil
}

// resolveAttachments maps the file content ids of the outputs to existing attachments.
// Content ids without an attachment are left out.
func (h *EventHandler) resolveAttachments(
	ctx context.Context,
	outputs []ledger.Token,
	current changeset.ChangeSet,
) (map[string]string, error) {
	var (
		mu          sync.Mutex
		attachments = make(map[string]string)
		seen        = make(map[string]struct{})
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, token := range outputs {
		for _, key := range token.Files {
			cid := token.Metadata[key]
			if _, ok := seen[cid]; ok || cid == "" {
				continue
			}
			seen[cid] = struct{}{}

			if id, ok := changeset.FindAttachmentID(current, cid); ok {
				mu.Lock()
				attachments[cid] = id
				mu.Unlock()
				continue
			}

			g.Go(func() error {
				id, found, err := h.store.FindAttachmentIDByIPFSHash(gctx, cid)
				if err != nil {
					return fmt.Errorf("failed to resolve attachment %s: %w", cid, err)
				}
				if found {
					mu.Lock()
					attachments[cid] = id
					mu.Unlock()
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return attachments, nil
}

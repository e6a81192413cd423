package notion

import "context"

// PageBlocks fetches a page's full block tree, flattened into depth-first
// document order. Each block's Depth records its nesting level.
//
// The traversal uses an explicit work list instead of recursion, so pages
// nested to unknown depth cannot grow the call stack. Blocks whose
// has_children flag is set trigger follow-up child-listing calls, each
// following its own cursor until the remote signals exhaustion.
//
// Failures are wrapped in a *FetchError scoped to this page; callers
// continue with sibling pages.
func (c *Client) PageBlocks(ctx context.Context, pageID string) ([]*Block, error) {
	type frame struct {
		block *Block
		depth int
	}

	// Work list of blocks still to emit; the top of the stack is the next
	// block in document order, so children are pushed in reverse.
	var stack []frame
	push := func(children []*Block, depth int) {
		for i := len(children) - 1; i >= 0; i-- {
			children[i].Depth = depth
			stack = append(stack, frame{block: children[i], depth: depth})
		}
	}

	// The page itself is the root block; its direct children form the
	// top level of the tree.
	top, err := c.listAllChildren(ctx, pageID)
	if err != nil {
		return nil, &FetchError{PageID: pageID, Op: "list blocks", Err: err}
	}
	push(top, 0)

	var out []*Block
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, fr.block)

		if fr.block.HasChildren {
			children, err := c.listAllChildren(ctx, fr.block.ID)
			if err != nil {
				return nil, &FetchError{PageID: pageID, Op: "list child blocks", Err: err}
			}
			push(children, fr.depth+1)
		}
	}

	return out, nil
}

// listAllChildren lists every direct child of a block, following the
// child-listing cursor until has_more is false.
func (c *Client) listAllChildren(ctx context.Context, blockID string) ([]*Block, error) {
	var children []*Block
	cursor := ""

	for {
		resp, err := c.blockChildren(ctx, blockID, cursor)
		if err != nil {
			return nil, err
		}

		children = append(children, resp.Results...)

		if !resp.HasMore || resp.NextCursor == "" {
			return children, nil
		}
		cursor = resp.NextCursor
	}
}

// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slicegT92fjDAmBTMJnq9ΣzcNQAΞΞ = ord.NewSliceSer[float32](varint.Float32)
	slicexOQtDoI2UTUM9SQimrEekgΞΞ = ord.NewSliceSer[RunFailure](RunFailureMUS)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var RunStateMUS = runStateMUS{}

type runStateMUS struct{}

func (s runStateMUS) Marshal(v RunState, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s runStateMUS) Unmarshal(bs []byte) (v RunState, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = RunState(tmp)
	return
}

func (s runStateMUS) Size(v RunState) (size int) {
	return varint.Int.Size(int(v))
}

func (s runStateMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var PageRecordMUS = pageRecordMUS{}

type pageRecordMUS struct{}

func (s pageRecordMUS) Marshal(v PageRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.UserID, bs[n:])
	n += ord.String.Marshal(v.SourcePageID, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Contents, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += varint.Int.Marshal(v.BlockCount, bs[n:])
	n += slicegT92fjDAmBTMJnq9ΣzcNQAΞΞ.Marshal(v.Vector, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.ImportedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s pageRecordMUS) Unmarshal(bs []byte) (v PageRecord, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.UserID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourcePageID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Contents, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.BlockCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slicegT92fjDAmBTMJnq9ΣzcNQAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ImportedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s pageRecordMUS) Size(v PageRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.UserID)
	size += ord.String.Size(v.SourcePageID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Contents)
	size += ord.String.Size(v.Source)
	size += varint.Int.Size(v.BlockCount)
	size += slicegT92fjDAmBTMJnq9ΣzcNQAΞΞ.Size(v.Vector)
	size += raw.TimeUnixMicro.Size(v.ImportedAt)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s pageRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicegT92fjDAmBTMJnq9ΣzcNQAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var CredentialMUS = credentialMUS{}

type credentialMUS struct{}

func (s credentialMUS) Marshal(v Credential, bs []byte) (n int) {
	n = ord.String.Marshal(v.AccessToken, bs)
	n += ord.String.Marshal(v.WorkspaceID, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
}

func (s credentialMUS) Unmarshal(bs []byte) (v Credential, n int, err error) {
	v.AccessToken, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.WorkspaceID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s credentialMUS) Size(v Credential) (size int) {
	size = ord.String.Size(v.AccessToken)
	size += ord.String.Size(v.WorkspaceID)
	return size + raw.TimeUnixMicro.Size(v.CreatedAt)
}

func (s credentialMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var RunFailureMUS = runFailureMUS{}

type runFailureMUS struct{}

func (s runFailureMUS) Marshal(v RunFailure, bs []byte) (n int) {
	n = ord.String.Marshal(v.PageID, bs)
	return n + ord.String.Marshal(v.Reason, bs[n:])
}

func (s runFailureMUS) Unmarshal(bs []byte) (v RunFailure, n int, err error) {
	v.PageID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Reason, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s runFailureMUS) Size(v RunFailure) (size int) {
	size = ord.String.Size(v.PageID)
	return size + ord.String.Size(v.Reason)
}

func (s runFailureMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var RunSummaryMUS = runSummaryMUS{}

type runSummaryMUS struct{}

func (s runSummaryMUS) Marshal(v RunSummary, bs []byte) (n int) {
	n = ord.String.Marshal(v.RunID, bs)
	n += ord.String.Marshal(v.UserID, bs[n:])
	n += RunStateMUS.Marshal(v.State, bs[n:])
	n += varint.Int.Marshal(v.Total, bs[n:])
	n += varint.Int.Marshal(v.Succeeded, bs[n:])
	n += varint.Int.Marshal(v.Failed, bs[n:])
	n += slicexOQtDoI2UTUM9SQimrEekgΞΞ.Marshal(v.Failures, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.StartedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.FinishedAt, bs[n:])
}

func (s runSummaryMUS) Unmarshal(bs []byte) (v RunSummary, n int, err error) {
	v.RunID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.UserID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.State, n1, err = RunStateMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Total, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Succeeded, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Failed, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Failures, n1, err = slicexOQtDoI2UTUM9SQimrEekgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FinishedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s runSummaryMUS) Size(v RunSummary) (size int) {
	size = ord.String.Size(v.RunID)
	size += ord.String.Size(v.UserID)
	size += RunStateMUS.Size(v.State)
	size += varint.Int.Size(v.Total)
	size += varint.Int.Size(v.Succeeded)
	size += varint.Int.Size(v.Failed)
	size += slicexOQtDoI2UTUM9SQimrEekgΞΞ.Size(v.Failures)
	size += raw.TimeUnixMicro.Size(v.StartedAt)
	return size + raw.TimeUnixMicro.Size(v.FinishedAt)
}

func (s runSummaryMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = RunStateMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicexOQtDoI2UTUM9SQimrEekgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

package bank

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

var _ Repository = (*MockRepository)(nil)

func (_m *MockRepository) Load(ctx context.Context) (Snapshot, error) {
	ret := _m.Called(ctx)

	var r0 Snapshot
	if rf, ok := ret.Get(0).(func(context.Context) Snapshot); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(Snapshot)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) Save(ctx context.Context, snap Snapshot) error {
	ret := _m.Called(ctx, snap)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, Snapshot) error); ok {
		r0 = rf(ctx, snap)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) Path() string {
	ret := _m.Called()
	return ret.String(0)
}

package handler

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dtroode/attendance-server/internal/api/grpc/codec"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "attendance.v1.Attendance"

// AttendanceServer is the server API for the attendance service.
type AttendanceServer interface {
	OpenSession(ctx context.Context, req *OpenSessionRequest) (*OpenSessionResponse, error)
	CloseSession(ctx context.Context, req *CloseSessionRequest) (*CloseSessionResponse, error)
	Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error)
	Roster(ctx context.Context, req *RosterRequest) (*RosterResponse, error)
	CurrentToken(ctx context.Context, req *CurrentTokenRequest) (*CurrentTokenResponse, error)
	CourseReport(ctx context.Context, req *CourseReportRequest) (*CourseReportResponse, error)
}

// ServiceDesc describes the attendance service. Messages are plain structs
// carried by the JSON codec, so there is no generated descriptor behind it.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AttendanceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OpenSession", Handler: unary("OpenSession", AttendanceServer.OpenSession)},
		{MethodName: "CloseSession", Handler: unary("CloseSession", AttendanceServer.CloseSession)},
		{MethodName: "Verify", Handler: unary("Verify", AttendanceServer.Verify)},
		{MethodName: "Roster", Handler: unary("Roster", AttendanceServer.Roster)},
		{MethodName: "CurrentToken", Handler: unary("CurrentToken", AttendanceServer.CurrentToken)},
		{MethodName: "CourseReport", Handler: unary("CourseReport", AttendanceServer.CourseReport)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "attendance/v1/attendance",
}

// RegisterAttendanceServer registers srv on s.
func RegisterAttendanceServer(s grpc.ServiceRegistrar, srv AttendanceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](method string, call func(AttendanceServer, context.Context, *Req) (*Resp, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	fullMethod := "/" + ServiceName + "/" + method

	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AttendanceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AttendanceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls the attendance service using the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) OpenSession(ctx context.Context, in *OpenSessionRequest, opts ...grpc.CallOption) (*OpenSessionResponse, error) {
	out := new(OpenSessionResponse)
	if err := c.invoke(ctx, "OpenSession", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CloseSession(ctx context.Context, in *CloseSessionRequest, opts ...grpc.CallOption) (*CloseSessionResponse, error) {
	out := new(CloseSessionResponse)
	if err := c.invoke(ctx, "CloseSession", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Verify(ctx context.Context, in *VerifyRequest, opts ...grpc.CallOption) (*VerifyResponse, error) {
	out := new(VerifyResponse)
	if err := c.invoke(ctx, "Verify", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Roster(ctx context.Context, in *RosterRequest, opts ...grpc.CallOption) (*RosterResponse, error) {
	out := new(RosterResponse)
	if err := c.invoke(ctx, "Roster", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CurrentToken(ctx context.Context, in *CurrentTokenRequest, opts ...grpc.CallOption) (*CurrentTokenResponse, error) {
	out := new(CurrentTokenResponse)
	if err := c.invoke(ctx, "CurrentToken", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CourseReport(ctx context.Context, in *CourseReportRequest, opts ...grpc.CallOption) (*CourseReportResponse, error) {
	out := new(CourseReportResponse)
	if err := c.invoke(ctx, "CourseReport", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

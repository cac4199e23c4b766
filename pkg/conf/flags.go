// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conf

// MetadataDisabledValue turns off metadata recording when given as cassandra_addr.
const MetadataDisabledValue = "none"

// Flags for the Cassandra cluster that stores experiment metadata.
var (
	// CassandraAddress is an address of the metadata database. The default
	// value disables metadata recording entirely.
	CassandraAddress = NewStringFlag("cassandra_addr", "Address of Cassandra DB endpoint for metadata storage. Use 'none' to disable metadata recording.", MetadataDisabledValue)

	// CassandraUsername holds the user name which will be presented when connecting to the cluster.
	CassandraUsername = NewStringFlag("cassandra_username", "The user name which will be presented when connecting to the cluster.", "")

	// CassandraPassword holds the password which will be presented when connecting to the cluster.
	CassandraPassword = NewStringFlag("cassandra_password", "The password which will be presented when connecting to the cluster.", "")

	// CassandraConnectionTimeout limits the time the driver waits for a connection.
	CassandraConnectionTimeout = NewDurationFlag("cassandra_timeout", "Timeout of connection to Cassandra DB.", 0)

	// CassandraSslEnabled determines whether the cluster connection is encrypted.
	CassandraSslEnabled = NewBoolFlag("cassandra_ssl", "Determines whether the connection to the cluster should be encrypted.", false)

	// CassandraSslHostValidation enables verification of the cluster certificate chain and host name.
	CassandraSslHostValidation = NewBoolFlag("cassandra_ssl_host_validation", "Verify the hostname and the server cert of the cluster. Requires cassandra_ssl.", false)

	// CassandraSslCAPath points to the CA certificate used to validate the cluster.
	CassandraSslCAPath = NewStringFlag("cassandra_ssl_ca_path", "Path to the CA certificate used to validate the cluster. Requires cassandra_ssl.", "")

	// CassandraSslCertPath points to the client certificate, for client based authentication.
	CassandraSslCertPath = NewStringFlag("cassandra_ssl_cert_path", "Path to the client certificate. Requires cassandra_ssl.", "")

	// CassandraSslKeyPath points to the key of the client certificate.
	CassandraSslKeyPath = NewStringFlag("cassandra_ssl_key_path", "Path to the key of the client certificate. Requires cassandra_ssl.", "")
)
